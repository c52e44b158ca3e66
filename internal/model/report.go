package model

import "time"

// Stage tracks how far one input assertion made it through the pipeline
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageClassified Stage = "CLASSIFIED"
	StageGSelected  Stage = "G_SELECTED"
	StageDecomposed Stage = "DECOMPOSED"
	StageIDAssigned Stage = "ID_ASSIGNED"
	StageVerified   Stage = "VERIFIED"

	StageClassificationFailed Stage = "CLASSIFICATION_FAILED"
	StageInvalidSelection     Stage = "INVALID_SELECTION"
)

// FailureKind labels why an input's analysis aborted
type FailureKind string

const (
	FailureClassification FailureKind = "classification_failed"
	FailureSelection      FailureKind = "invalid_selection"
	FailureUnknownDim     FailureKind = "unknown_dimension"
	FailureInternal       FailureKind = "internal"
)

// Failure records a terminal per-input error. A failed input always keeps
// its original text so the batch summary can show what was rejected.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Report is the complete analysis result for one input assertion
type Report struct {
	RunID      string    `json:"run_id"`
	BatchIndex int       `json:"batch_index"`
	Input      string    `json:"input"`
	Context    string    `json:"context,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Stage   Stage    `json:"stage"`
	Failure *Failure `json:"failure,omitempty"`

	Scenario *Scenario       `json:"scenario,omitempty"`
	Units    []AssertionUnit `json:"units,omitempty"`
}

// Failed reports whether this input ended in a terminal failure state
func (r *Report) Failed() bool {
	return r.Failure != nil
}

// BatchSummary aggregates outcomes across one batch run
type BatchSummary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	TotalUnits int           `json:"total_units"`

	// FailuresByKind counts failed inputs per failure kind
	FailuresByKind map[string]int `json:"failures_by_kind,omitempty"`

	// DimensionHits counts produced units per dimension id
	DimensionHits map[string]int `json:"dimension_hits,omitempty"`

	// Verification totals are present only when a plan was verified
	Verification *VerificationTotals `json:"verification,omitempty"`

	// FailedInputs preserves the original text of each rejected line
	FailedInputs []FailedInput `json:"failed_inputs,omitempty"`
}

// VerificationTotals aggregates pass/fail counts across all units
type VerificationTotals struct {
	Pass int `json:"pass"`
	Fail int `json:"fail"`
}

// FailedInput is one rejected batch line with its failure kind
type FailedInput struct {
	BatchIndex int         `json:"batch_index"`
	Input      string      `json:"input"`
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"message,omitempty"`
}
