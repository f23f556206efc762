package llm

import (
	"fmt"

	"github.com/claimsift/claimsift/internal/model"
)

// Prompt templates. Each embeds the document metadata and window text and
// closes with an explicit schema and the instruction that the response
// must be a single JSON array with no surrounding prose.

const claimPromptTemplate = `You are analyzing a Medicaid MCO proposal or RFP document for a research study on accountability claims.

Document: %s %s %s %s
Section text (partial):
%s

Extract ALL quantitative claims about health outcomes. A quantitative claim includes:
- Specific numeric improvements (percentages, counts, rates)
- Comparisons to benchmarks or prior periods
- Targets with specific values
- Quality measure results (HEDIS, etc.)

For each claim found, extract in this JSON format:
{
  "verbatim_text": "[exact quote, max 300 chars]",
  "domain_code": "[VBC|PH|AC|CC|QM|PM|HIT|WD]",
  "clinical_area": "[MAT|PED|BH|CHR|PCP|HOSP|RX|NONE]",
  "claim_type": "[HIST|PROJ|COMP|METH]",
  "metric_name": "[specific measure name if stated]",
  "metric_steward": "[NCQA|CMS|State|Internal|Other]",
  "baseline_value": [number or null],
  "baseline_year": [year or null],
  "outcome_value": [number or null],
  "outcome_year": [year or null],
  "change_type": "[Q-ABS|Q-PCT|Q-PPT|Q-TGT|Q-NONE]",
  "change_magnitude": [number or null],
  "change_direction": "[increase|decrease|maintain|NA]",
  "timeline": "[timeframe described or null]",
  "evidence_type": "[PR|CG|PP|INT|EXT|NONE]",
  "citation": "[if peer-reviewed, citation text]",
  "partners": ["list of third parties mentioned"],
  "confidence": "[HIGH|MEDIUM|LOW]"
}

Return ONLY a JSON array of claims. If no quantitative claims in section, return empty array [].
Do not include any explanation, just the JSON array.`

const commitmentPromptTemplate = `You are analyzing a Medicaid MCO proposal to extract future performance commitments.

Document: %s %s %s %s
Section text (partial):
%s

Extract ALL future performance commitments or promises. Look for:
- "We will achieve..."
- "Our target is..."
- "By Year X, we commit to..."
- Performance guarantees
- Quality improvement targets

For each commitment, extract:
{
  "verbatim_text": "[exact quote]",
  "domain_code": "[VBC|PH|AC|CC|QM|PM|HIT|WD]",
  "clinical_area": "[MAT|PED|BH|CHR|PCP|HOSP|RX|NONE]",
  "metric_name": "[specific measure]",
  "metric_steward": "[NCQA|CMS|State|Internal|Other]",
  "current_baseline": "[if stated, null otherwise]",
  "target_value": "[specific target]",
  "target_type": "[Q-ABS|Q-PCT|Q-PPT|Q-TGT]",
  "deadline": "[when to be achieved]",
  "contract_year": "[Year 1|Year 2|Year 3|etc or null]",
  "consequence": "[penalty or incentive if stated, null otherwise]",
  "confidence": "[HIGH|MEDIUM|LOW]"
}

Return ONLY a JSON array. If no commitments found, return [].
Do not include any explanation, just the JSON array.`

const partnershipPromptTemplate = `You are analyzing a Medicaid MCO proposal to identify third-party partnerships.

Document: %s %s %s %s
Section text (partial):
%s

Extract ALL mentioned partnerships with external organizations. Include:
- Community-based organizations (CBOs)
- Health systems / provider groups
- Technology vendors
- Academic institutions
- Government agencies

For each partnership:
{
  "partner_name": "[organization name]",
  "partner_type": "[P-CBO|P-GOV|P-ACAD|P-TECH|P-PROV]",
  "relationship": "[contracted|affiliated|collaborative|other]",
  "services": ["list of services provided"],
  "outcomes_attributed": "[any outcomes/metrics attributed to partnership]",
  "geographic_scope": "[state|regional|national|local]",
  "confidence": "[HIGH|MEDIUM|LOW]"
}

Return ONLY a JSON array. If no partnerships found, return [].
Do not include any explanation, just the JSON array.`

func promptArgs(meta model.DocumentMetadata, text string) []interface{} {
	org := meta.Organization
	if org == "" {
		org = "Unknown"
	}
	year := "Unknown"
	if meta.Year != 0 {
		year = fmt.Sprintf("%d", meta.Year)
	}
	return []interface{}{meta.State, org, year, string(meta.DocumentType), text}
}

// BuildClaimPrompt renders the claim extraction prompt for one window
func BuildClaimPrompt(meta model.DocumentMetadata, win model.TextWindow) string {
	return fmt.Sprintf(claimPromptTemplate, promptArgs(meta, win.Text)...)
}

// BuildCommitmentPrompt renders the commitment extraction prompt for one window
func BuildCommitmentPrompt(meta model.DocumentMetadata, win model.TextWindow) string {
	return fmt.Sprintf(commitmentPromptTemplate, promptArgs(meta, win.Text)...)
}

// BuildPartnershipPrompt renders the partnership extraction prompt for one window
func BuildPartnershipPrompt(meta model.DocumentMetadata, win model.TextWindow) string {
	return fmt.Sprintf(partnershipPromptTemplate, promptArgs(meta, win.Text)...)
}
