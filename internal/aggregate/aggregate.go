package aggregate

import (
	"github.com/claimsift/claimsift/internal/model"
)

// AxisCounts is the frequency table for one taxonomy axis. Every code of
// the axis appears, including codes with zero occurrences.
type AxisCounts struct {
	Axis   model.Axis     `json:"axis"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"` // claims with a recognized code on this axis
}

// Summary tallies claim records against the five coding taxonomies
type Summary struct {
	TotalClaims int                       `json:"total_claims"`
	Axes        map[model.Axis]AxisCounts `json:"axes"`
}

// axisCode selects the claim field that carries the code for an axis
func axisCode(claim model.Claim, axis model.Axis) string {
	switch axis {
	case model.AxisDomain:
		return claim.DomainCode
	case model.AxisClinicalArea:
		return claim.ClinicalArea
	case model.AxisEvidenceType:
		return claim.EvidenceType
	case model.AxisClaimType:
		return claim.ClaimType
	case model.AxisQuantification:
		return claim.ChangeType
	}
	return ""
}

// Summarize builds one frequency table per taxonomy axis over the claim
// records. Codes outside an axis vocabulary (including empty fields)
// contribute nothing to that axis; the result depends only on the record
// multiset, not its order.
func Summarize(claims []model.Claim) Summary {
	summary := Summary{
		TotalClaims: len(claims),
		Axes:        make(map[model.Axis]AxisCounts),
	}

	for _, tax := range model.Taxonomies() {
		counts := make(map[string]int, len(tax.Codes))
		for _, code := range tax.Codes {
			counts[code] = 0
		}

		total := 0
		for _, claim := range claims {
			code := axisCode(claim, tax.Axis)
			if !tax.Contains(code) {
				continue
			}
			counts[code]++
			total++
		}

		summary.Axes[tax.Axis] = AxisCounts{Axis: tax.Axis, Counts: counts, Total: total}
	}

	return summary
}
