package model

// ExtractionMethod identifies which strategy produced a record
type ExtractionMethod string

const (
	MethodPattern ExtractionMethod = "pattern"
	MethodModel   ExtractionMethod = "model"
)

// Provenance traces an extracted record back to its source document and
// window. Stamped by the orchestrator, never mutated afterwards.
type Provenance struct {
	DocumentID   string           `json:"document_id"`
	State        string           `json:"state"`
	Organization string           `json:"mco_name,omitempty"`
	Year         int              `json:"year,omitempty"`
	DocumentType DocumentType     `json:"doc_type"`
	WindowIndex  int              `json:"chunk_index"`
	Method       ExtractionMethod `json:"extraction_method"`
}

// Claim is a quantitative assertion about health outcomes extracted from a
// document. Code fields hold taxonomy codes; unrecognized codes are kept
// verbatim and simply excluded from aggregation.
type Claim struct {
	VerbatimText    string   `json:"verbatim_text"`
	DomainCode      string   `json:"domain_code,omitempty"`
	ClinicalArea    string   `json:"clinical_area,omitempty"`
	ClaimType       string   `json:"claim_type,omitempty"`
	MetricName      string   `json:"metric_name,omitempty"`
	MetricSteward   string   `json:"metric_steward,omitempty"`
	BaselineValue   *float64 `json:"baseline_value,omitempty"`
	BaselineYear    *int     `json:"baseline_year,omitempty"`
	OutcomeValue    *float64 `json:"outcome_value,omitempty"`
	OutcomeYear     *int     `json:"outcome_year,omitempty"`
	ChangeType      string   `json:"change_type,omitempty"` // quantification code
	ChangeMagnitude *float64 `json:"change_magnitude,omitempty"`
	ChangeDirection string   `json:"change_direction,omitempty"` // increase, decrease, maintain, NA
	Timeline        string   `json:"timeline,omitempty"`
	EvidenceType    string   `json:"evidence_type,omitempty"`
	Citation        string   `json:"citation,omitempty"`
	Partners        []string `json:"partners,omitempty"`
	Confidence      string   `json:"confidence,omitempty"` // HIGH, MEDIUM, LOW

	Provenance
}

// Commitment is a forward-looking performance promise
type Commitment struct {
	VerbatimText    string `json:"verbatim_text"`
	DomainCode      string `json:"domain_code,omitempty"`
	ClinicalArea    string `json:"clinical_area,omitempty"`
	MetricName      string `json:"metric_name,omitempty"`
	MetricSteward   string `json:"metric_steward,omitempty"`
	CurrentBaseline string `json:"current_baseline,omitempty"`
	TargetValue     string `json:"target_value,omitempty"`
	TargetType      string `json:"target_type,omitempty"` // quantification code
	Deadline        string `json:"deadline,omitempty"`
	ContractYear    string `json:"contract_year,omitempty"`
	Consequence     string `json:"consequence,omitempty"` // penalty or incentive if stated
	Confidence      string `json:"confidence,omitempty"`

	Provenance
}

// Partnership records a third-party relationship mentioned in a document
type Partnership struct {
	PartnerName        string   `json:"partner_name"`
	PartnerType        string   `json:"partner_type,omitempty"` // P-CBO, P-GOV, P-ACAD, P-TECH, P-PROV
	Relationship       string   `json:"relationship,omitempty"` // contracted, affiliated, collaborative, other
	Services           []string `json:"services,omitempty"`
	OutcomesAttributed string   `json:"outcomes_attributed,omitempty"`
	GeographicScope    string   `json:"geographic_scope,omitempty"`
	Confidence         string   `json:"confidence,omitempty"`

	Provenance
}

// DocumentAnalysis summarizes one document's extraction results
type DocumentAnalysis struct {
	DocumentID        string       `json:"document_id"`
	State             string       `json:"state"`
	Organization      string       `json:"mco_name,omitempty"`
	Year              int          `json:"year,omitempty"`
	DocumentType      DocumentType `json:"doc_type"`
	TotalClaims       int          `json:"total_claims"`
	TotalCommitments  int          `json:"total_commitments"`
	TotalPartnerships int          `json:"total_partnerships"`
	AnalyzedAt        string       `json:"analyzed_at"` // RFC 3339
}
