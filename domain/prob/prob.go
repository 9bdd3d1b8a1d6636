package prob

import (
	"math"
)

// Probability clamp bounds. A probability of exactly 0 or 1 is absorbing
// in Bayesian updating (log of zero, zero likelihood-ratio denominators),
// so the engine never lets one through.
const (
	MinProbability = 0.001
	MaxProbability = 0.999
)

// ClampProbability maps any real input into [MinProbability, MaxProbability].
// Non-finite inputs clamp to the nearer bound of their sign; NaN clamps low.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return MinProbability
	}
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

// WeightOfEvidence converts a likelihood ratio into decibans: 10*log10(LR).
// LR = 1 yields 0. Non-positive or non-finite ratios return NaN, which
// callers treat as a zero-contribution sentinel rather than an error.
func WeightOfEvidence(likelihoodRatio float64) float64 {
	if !(likelihoodRatio > 0) || math.IsInf(likelihoodRatio, 0) {
		return math.NaN()
	}
	return 10 * math.Log10(likelihoodRatio)
}

// EvidenceStrength is the 5-level ordinal classification of a weight of
// evidence value.
type EvidenceStrength string

const (
	StrengthStrongSupport EvidenceStrength = "strong_support"
	StrengthWeakSupport   EvidenceStrength = "weak_support"
	StrengthNeutral       EvidenceStrength = "neutral"
	StrengthWeakRefute    EvidenceStrength = "weak_refute"
	StrengthStrongRefute  EvidenceStrength = "strong_refute"
)

// ClassifyWoE buckets a weight of evidence (decibans) into an
// EvidenceStrength. Rules are evaluated in order, first match wins:
// woe in (0, 0.5) classifies as weak_support, not neutral. Changing the
// rule order changes displayed classifications; keep it.
func ClassifyWoE(woe float64) EvidenceStrength {
	if math.IsNaN(woe) {
		return StrengthNeutral
	}
	switch {
	case woe >= 5:
		return StrengthStrongSupport
	case woe > 0:
		return StrengthWeakSupport
	case woe > -0.5 && woe < 0.5:
		return StrengthNeutral
	case woe > -5:
		return StrengthWeakRefute
	default:
		return StrengthStrongRefute
	}
}
