package model

// Axis identifies one of the five fixed coding taxonomies
type Axis string

const (
	AxisDomain         Axis = "domain"
	AxisClinicalArea   Axis = "clinical_area"
	AxisEvidenceType   Axis = "evidence_type"
	AxisClaimType      Axis = "claim_type"
	AxisQuantification Axis = "quantification"
)

// Domain codes
const (
	DomainVBC = "VBC" // Value-Based Care
	DomainPH  = "PH"  // Population Health
	DomainAC  = "AC"  // Access to Care
	DomainCC  = "CC"  // Care Coordination
	DomainQM  = "QM"  // Quality Metrics
	DomainPM  = "PM"  // Payment Models
	DomainHIT = "HIT" // Health Information Technology
	DomainWD  = "WD"  // Workforce Development
)

// Clinical area codes
const (
	ClinicalMAT  = "MAT"  // Maternity
	ClinicalPED  = "PED"  // Pediatrics
	ClinicalBH   = "BH"   // Behavioral Health
	ClinicalCHR  = "CHR"  // Chronic Disease
	ClinicalPCP  = "PCP"  // Primary Care
	ClinicalHOSP = "HOSP" // Hospital Utilization
	ClinicalRX   = "RX"   // Pharmacy
)

// Evidence type codes
const (
	EvidencePR   = "PR"   // Peer-Reviewed
	EvidenceCG   = "CG"   // Control Group
	EvidencePP   = "PP"   // Pre-Post
	EvidenceINT  = "INT"  // Internal Analysis
	EvidenceEXT  = "EXT"  // External Validation
	EvidenceNONE = "NONE" // No Evidence
)

// Claim type codes
const (
	ClaimHIST = "HIST" // Historical Performance
	ClaimPROJ = "PROJ" // Projected Performance
	ClaimCOMP = "COMP" // Comparative Performance
	ClaimMETH = "METH" // Methodology Description
)

// Quantification codes
const (
	QuantABS  = "Q-ABS"  // Absolute Number
	QuantPCT  = "Q-PCT"  // Percentage
	QuantPPT  = "Q-PPT"  // Percentage Points
	QuantTGT  = "Q-TGT"  // Target with Timeline
	QuantNONE = "Q-NONE" // Unquantified
)

// Taxonomy is a closed coding vocabulary for one axis. Codes outside the
// vocabulary are "no match", never an error.
type Taxonomy struct {
	Axis   Axis
	Codes  []string          // declaration order, used for stable output
	Labels map[string]string // code -> human-readable label
}

// Contains reports whether code is a member of the taxonomy
func (t Taxonomy) Contains(code string) bool {
	_, ok := t.Labels[code]
	return ok
}

func newTaxonomy(axis Axis, entries ...[2]string) Taxonomy {
	t := Taxonomy{Axis: axis, Labels: make(map[string]string, len(entries))}
	for _, e := range entries {
		t.Codes = append(t.Codes, e[0])
		t.Labels[e[0]] = e[1]
	}
	return t
}

// Taxonomies returns the five coding taxonomies in a fixed order.
// They are defined once per run and never mutated.
func Taxonomies() []Taxonomy {
	return []Taxonomy{
		newTaxonomy(AxisDomain,
			[2]string{DomainVBC, "Value-Based Care"},
			[2]string{DomainPH, "Population Health"},
			[2]string{DomainAC, "Access to Care"},
			[2]string{DomainCC, "Care Coordination"},
			[2]string{DomainQM, "Quality Metrics"},
			[2]string{DomainPM, "Payment Models"},
			[2]string{DomainHIT, "Health Information Technology"},
			[2]string{DomainWD, "Workforce Development"},
		),
		newTaxonomy(AxisClinicalArea,
			[2]string{ClinicalMAT, "Maternity"},
			[2]string{ClinicalPED, "Pediatrics"},
			[2]string{ClinicalBH, "Behavioral Health"},
			[2]string{ClinicalCHR, "Chronic Disease"},
			[2]string{ClinicalPCP, "Primary Care"},
			[2]string{ClinicalHOSP, "Hospital Utilization"},
			[2]string{ClinicalRX, "Pharmacy"},
		),
		newTaxonomy(AxisEvidenceType,
			[2]string{EvidencePR, "Peer-Reviewed"},
			[2]string{EvidenceCG, "Control Group"},
			[2]string{EvidencePP, "Pre-Post"},
			[2]string{EvidenceINT, "Internal Analysis"},
			[2]string{EvidenceEXT, "External Validation"},
			[2]string{EvidenceNONE, "No Evidence"},
		),
		newTaxonomy(AxisClaimType,
			[2]string{ClaimHIST, "Historical Performance"},
			[2]string{ClaimPROJ, "Projected Performance"},
			[2]string{ClaimCOMP, "Comparative Performance"},
			[2]string{ClaimMETH, "Methodology Description"},
		),
		newTaxonomy(AxisQuantification,
			[2]string{QuantABS, "Absolute Number"},
			[2]string{QuantPCT, "Percentage"},
			[2]string{QuantPPT, "Percentage Points"},
			[2]string{QuantTGT, "Target with Timeline"},
			[2]string{QuantNONE, "Unquantified"},
		),
	}
}
