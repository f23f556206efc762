package llm

import (
	"context"
	"encoding/json"

	"github.com/claimsift/claimsift/internal/model"
)

// Wire payloads mirror the prompt schemas. Unrecognized extra fields are
// ignored; numeric fields tolerate numbers, numeric strings, and null.

type claimPayload struct {
	VerbatimText    string     `json:"verbatim_text"`
	DomainCode      string     `json:"domain_code"`
	ClinicalArea    string     `json:"clinical_area"`
	ClaimType       string     `json:"claim_type"`
	MetricName      string     `json:"metric_name"`
	MetricSteward   string     `json:"metric_steward"`
	BaselineValue   flexFloat  `json:"baseline_value"`
	BaselineYear    flexInt    `json:"baseline_year"`
	OutcomeValue    flexFloat  `json:"outcome_value"`
	OutcomeYear     flexInt    `json:"outcome_year"`
	ChangeType      string     `json:"change_type"`
	ChangeMagnitude flexFloat  `json:"change_magnitude"`
	ChangeDirection string     `json:"change_direction"`
	Timeline        flexString `json:"timeline"`
	EvidenceType    string     `json:"evidence_type"`
	Citation        string     `json:"citation"`
	Partners        []string   `json:"partners"`
	Confidence      string     `json:"confidence"`
}

type commitmentPayload struct {
	VerbatimText    string     `json:"verbatim_text"`
	DomainCode      string     `json:"domain_code"`
	ClinicalArea    string     `json:"clinical_area"`
	MetricName      string     `json:"metric_name"`
	MetricSteward   string     `json:"metric_steward"`
	CurrentBaseline flexString `json:"current_baseline"`
	TargetValue     flexString `json:"target_value"`
	TargetType      string     `json:"target_type"`
	Deadline        flexString `json:"deadline"`
	ContractYear    flexString `json:"contract_year"`
	Consequence     string     `json:"consequence"`
	Confidence      string     `json:"confidence"`
}

type partnershipPayload struct {
	PartnerName        string   `json:"partner_name"`
	PartnerType        string   `json:"partner_type"`
	Relationship       string   `json:"relationship"`
	Services           []string `json:"services"`
	OutcomesAttributed string   `json:"outcomes_attributed"`
	GeographicScope    string   `json:"geographic_scope"`
	Confidence         string   `json:"confidence"`
}

// Extractor invokes the external model service per window with the three
// schema-constrained prompts, recovering candidate records from the
// responses. Service failures degrade to zero records after the retry
// bound; they never become fatal pipeline errors.
type Extractor struct {
	provider Provider
	retry    RetryPolicy
}

// NewExtractor creates a model extractor around a provider
func NewExtractor(provider Provider, retry RetryPolicy) *Extractor {
	return &Extractor{provider: provider, retry: retry}
}

// Result holds the candidate records recovered from one window
type Result struct {
	Claims       []model.Claim
	Commitments  []model.Commitment
	Partnerships []model.Partnership
}

// Extract runs all three extraction prompts against one window. The
// returned error reports exhausted retries for run accounting; partial
// results are still returned alongside it.
func (e *Extractor) Extract(ctx context.Context, meta model.DocumentMetadata, win model.TextWindow) (Result, error) {
	var res Result
	var firstErr error

	claims, err := e.ExtractClaims(ctx, meta, win)
	if err != nil {
		firstErr = err
	}
	res.Claims = claims

	commitments, err := e.ExtractCommitments(ctx, meta, win)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	res.Commitments = commitments

	partnerships, err := e.ExtractPartnerships(ctx, meta, win)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	res.Partnerships = partnerships

	return res, firstErr
}

// ExtractClaims recovers quantitative claims from one window
func (e *Extractor) ExtractClaims(ctx context.Context, meta model.DocumentMetadata, win model.TextWindow) ([]model.Claim, error) {
	raw, err := e.complete(ctx, BuildClaimPrompt(meta, win))
	if err != nil {
		return nil, err
	}

	var claims []model.Claim
	for _, item := range DecodeArray(raw) {
		var p claimPayload
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		// verbatim excerpt is the one mandatory field
		if p.VerbatimText == "" {
			continue
		}
		claims = append(claims, model.Claim{
			VerbatimText:    p.VerbatimText,
			DomainCode:      p.DomainCode,
			ClinicalArea:    p.ClinicalArea,
			ClaimType:       p.ClaimType,
			MetricName:      p.MetricName,
			MetricSteward:   p.MetricSteward,
			BaselineValue:   p.BaselineValue.value,
			BaselineYear:    p.BaselineYear.value,
			OutcomeValue:    p.OutcomeValue.value,
			OutcomeYear:     p.OutcomeYear.value,
			ChangeType:      p.ChangeType,
			ChangeMagnitude: p.ChangeMagnitude.value,
			ChangeDirection: p.ChangeDirection,
			Timeline:        p.Timeline.value,
			EvidenceType:    p.EvidenceType,
			Citation:        p.Citation,
			Partners:        p.Partners,
			Confidence:      p.Confidence,
			Provenance:      e.provenance(win),
		})
	}
	return claims, nil
}

// ExtractCommitments recovers forward commitments from one window
func (e *Extractor) ExtractCommitments(ctx context.Context, meta model.DocumentMetadata, win model.TextWindow) ([]model.Commitment, error) {
	raw, err := e.complete(ctx, BuildCommitmentPrompt(meta, win))
	if err != nil {
		return nil, err
	}

	var commitments []model.Commitment
	for _, item := range DecodeArray(raw) {
		var p commitmentPayload
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		if p.VerbatimText == "" {
			continue
		}
		commitments = append(commitments, model.Commitment{
			VerbatimText:    p.VerbatimText,
			DomainCode:      p.DomainCode,
			ClinicalArea:    p.ClinicalArea,
			MetricName:      p.MetricName,
			MetricSteward:   p.MetricSteward,
			CurrentBaseline: p.CurrentBaseline.value,
			TargetValue:     p.TargetValue.value,
			TargetType:      p.TargetType,
			Deadline:        p.Deadline.value,
			ContractYear:    p.ContractYear.value,
			Consequence:     p.Consequence,
			Confidence:      p.Confidence,
			Provenance:      e.provenance(win),
		})
	}
	return commitments, nil
}

// ExtractPartnerships recovers third-party partnerships from one window
func (e *Extractor) ExtractPartnerships(ctx context.Context, meta model.DocumentMetadata, win model.TextWindow) ([]model.Partnership, error) {
	raw, err := e.complete(ctx, BuildPartnershipPrompt(meta, win))
	if err != nil {
		return nil, err
	}

	var partnerships []model.Partnership
	for _, item := range DecodeArray(raw) {
		var p partnershipPayload
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		if p.PartnerName == "" {
			continue
		}
		partnerships = append(partnerships, model.Partnership{
			PartnerName:        p.PartnerName,
			PartnerType:        p.PartnerType,
			Relationship:       p.Relationship,
			Services:           p.Services,
			OutcomesAttributed: p.OutcomesAttributed,
			GeographicScope:    p.GeographicScope,
			Confidence:         p.Confidence,
			Provenance:         e.provenance(win),
		})
	}
	return partnerships, nil
}

func (e *Extractor) complete(ctx context.Context, prompt string) (string, error) {
	return e.retry.Do(ctx, func(ctx context.Context) (string, error) {
		return e.provider.Complete(ctx, prompt)
	})
}

func (e *Extractor) provenance(win model.TextWindow) model.Provenance {
	return model.Provenance{
		DocumentID:  win.DocumentID,
		WindowIndex: win.WindowIndex,
		Method:      model.MethodModel,
	}
}
