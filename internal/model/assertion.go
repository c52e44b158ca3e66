package model

// Layer distinguishes the two halves of the dimension taxonomy
type Layer string

const (
	LayerStructural Layer = "structural" // Presence/shape checks on the plan
	LayerGrounding  Layer = "grounding"  // Factual checks against the reference scenario
)

// Level expresses how important an assertion is for plan quality
type Level string

const (
	LevelCritical     Level = "critical"
	LevelExpected     Level = "expected"
	LevelAspirational Level = "aspirational"
)

// AssertionUnit is one atomic, independently verifiable claim about a plan.
// Grounding units always reference the structural unit they were derived
// from via ParentAssertionID; structural roots leave it empty.
type AssertionUnit struct {
	AssertionID       string `json:"assertion_id"`
	ParentAssertionID string `json:"parent_assertion_id,omitempty"`
	DimensionID       string `json:"dimension_id"`
	Layer             Layer  `json:"layer"`
	Level             Level  `json:"level"`
	Weight            int    `json:"weight"`

	Template         string   `json:"template"`
	InstantiatedText string   `json:"instantiated_text"`
	SlotTypesUsed    []string `json:"slot_types_used,omitempty"`

	// SubAspect narrows what within the dimension this unit tests; distinct
	// per structural unit when a compound input is split.
	SubAspect string `json:"sub_aspect,omitempty"`

	// Rationale explains the dimension or linkage choice
	Rationale string `json:"rationale,omitempty"`

	// SourceText is the original input assertion this unit was derived from
	SourceText string `json:"source_text,omitempty"`

	Verification *VerificationResult `json:"verification,omitempty"`
}

// ClassificationResult is one structural dimension assignment returned by
// the classifier. A compound input legitimately yields several of these.
type ClassificationResult struct {
	DimensionID string `json:"dimension_id"`
	Level       Level  `json:"level,omitempty"`
	Weight      int    `json:"weight,omitempty"`
	SubAspect   string `json:"sub_aspect,omitempty"`
	Rationale   string `json:"rationale"`
}

// SelectedGrounding is one grounding dimension the selector kept for a
// specific structural assertion, with the reason it was kept.
type SelectedGrounding struct {
	GroundingID string `json:"grounding_id"`
	Rationale   string `json:"rationale"`
}

// VerificationStatus is the outcome of checking one assertion against a plan
type VerificationStatus string

const (
	VerificationPass VerificationStatus = "pass"
	VerificationFail VerificationStatus = "fail"
)

// VerificationResult is the per-unit outcome supplied by the external
// verification capability. The core defines the shape only.
type VerificationResult struct {
	AssertionID string             `json:"assertion_id,omitempty"`
	Status      VerificationStatus `json:"status"`
	Evidence    string             `json:"evidence,omitempty"`
}
