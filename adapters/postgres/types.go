package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBDocument is a custom type for PostgreSQL JSONB columns holding a
// whole serialized domain object. Sessions and scenarios persist as
// documents; the relational columns only carry the keys used for lookup.
type JSONBDocument []byte

// Value implements driver.Valuer interface
func (d JSONBDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

// Scan implements sql.Scanner interface
func (d *JSONBDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
		return nil
	case string:
		*d = JSONBDocument(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONBDocument", value)
	}
}

// marshalDocument serializes a domain object into a JSONB document.
func marshalDocument(v interface{}) (JSONBDocument, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONBDocument(data), nil
}

// unmarshalDocument deserializes a JSONB document into a domain object.
func unmarshalDocument(d JSONBDocument, v interface{}) error {
	return json.Unmarshal([]byte(d), v)
}
