// Package excel exports the debrief report as an .xlsx workbook.
package excel

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"hypotourney/domain/persona"
	"hypotourney/domain/prob"
	"hypotourney/domain/score"
	"hypotourney/domain/session"
)

// DebriefWriter renders a settled session into a workbook with one sheet
// per concern: leaderboard, prediction results, and payoff statistics.
type DebriefWriter struct{}

// NewDebriefWriter creates a debrief exporter.
func NewDebriefWriter() *DebriefWriter {
	return &DebriefWriter{}
}

// Write builds the workbook and saves it to path. The session must be
// settled; Leaderboard enforces that.
func (w *DebriefWriter) Write(s *session.Session, path string) error {
	entries, err := s.Leaderboard()
	if err != nil {
		return fmt.Errorf("debrief export requires a settled session: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := w.writeLeaderboard(file, s, entries); err != nil {
		return err
	}
	if s.PredictionSummary != nil {
		if err := w.writePredictions(file, s.PredictionSummary); err != nil {
			return err
		}
	}
	if err := w.writeStatistics(file, entries); err != nil {
		return err
	}

	// excelize starts every workbook with a default sheet
	file.DeleteSheet("Sheet1")

	return file.SaveAs(path)
}

func (w *DebriefWriter) writeLeaderboard(file *excelize.File, s *session.Session, entries []persona.LeaderboardEntry) error {
	const sheet = "Leaderboard"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"Rank", "Competitor", "Paradigm", "Total Bet", "Payoff"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, entry := range entries {
		c := entry.Competitor
		name := c.Persona.Name
		if c.IsPlayer {
			name = "You"
		}
		payoff := 0.0
		if c.Payoff != nil {
			payoff = *c.Payoff
		}
		row := []interface{}{
			entry.Rank,
			name,
			string(c.Paradigm),
			c.Bets.Total(),
			prob.FormatCredits(payoff),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *DebriefWriter) writePredictions(file *excelize.File, summary *score.Summary) error {
	const sheet = "Predictions"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"Cluster", "Predicted", "Actual", "Correct", "Points"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, result := range summary.Results {
		row := []interface{}{
			result.ClusterName,
			string(result.Predicted),
			string(result.Actual),
			result.Correct,
			result.Points,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	totalRow := []interface{}{"Total", "", "", summary.CorrectCount, summary.TotalBonus}
	cell := fmt.Sprintf("A%d", len(summary.Results)+2)
	return file.SetSheetRow(sheet, cell, &totalRow)
}

func (w *DebriefWriter) writeStatistics(file *excelize.File, entries []persona.LeaderboardEntry) error {
	const sheet = "Statistics"
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	payoffs := make([]float64, 0, len(entries))
	for _, entry := range entries {
		if entry.Competitor.Payoff != nil {
			payoffs = append(payoffs, *entry.Competitor.Payoff)
		}
	}

	mean, err := stats.Mean(payoffs)
	if err != nil {
		return err
	}
	stdev, _ := stats.StandardDeviation(payoffs)
	max, _ := stats.Max(payoffs)
	min, _ := stats.Min(payoffs)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Competitors", len(payoffs)},
		{"Mean payoff", mean},
		{"Stdev payoff", stdev},
		{"Best payoff", max},
		{"Worst payoff", min},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
