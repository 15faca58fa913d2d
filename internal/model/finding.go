package model

// FindingType categorizes the ambiguity class a rule detected
type FindingType string

const (
	FindingVagueQuantifier FindingType = "vague_quantifier" // "some", "a few", "lots of" without a number
	FindingUndefinedScope  FindingType = "undefined_scope"  // broad opener on a short prompt
	FindingMissingFormat   FindingType = "missing_format"   // long prompt with no output format hint
)

// Finding is one detected ambiguity with the question that resolves it
type Finding struct {
	Type     FindingType `json:"type"`
	Question string      `json:"question"`
	Options  []string    `json:"options"` // Suggested answers, in presentation order
}

// Detection is the result of an ambiguity pre-check on a prompt
type Detection struct {
	HasAmbiguity bool      `json:"hasAmbiguity"`
	Questions    []Finding `json:"questions"`
}
