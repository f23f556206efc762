package aggregate

import (
	"reflect"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestSummarize_CountsRecognizedCodes(t *testing.T) {
	claims := []model.Claim{
		{DomainCode: "QM", ClinicalArea: "BH", ClaimType: "HIST", ChangeType: "Q-PCT", EvidenceType: "INT"},
		{DomainCode: "QM", ClinicalArea: "MAT", ClaimType: "PROJ", ChangeType: "Q-PCT"},
		{DomainCode: "VBC", ChangeType: "Q-TGT"},
	}

	s := Summarize(claims)

	if s.TotalClaims != 3 {
		t.Errorf("total claims = %d, want 3", s.TotalClaims)
	}

	domain := s.Axes[model.AxisDomain]
	if domain.Counts["QM"] != 2 || domain.Counts["VBC"] != 1 {
		t.Errorf("domain counts = %v", domain.Counts)
	}
	if domain.Total != 3 {
		t.Errorf("domain total = %d, want 3", domain.Total)
	}

	quant := s.Axes[model.AxisQuantification]
	if quant.Counts["Q-PCT"] != 2 || quant.Counts["Q-TGT"] != 1 {
		t.Errorf("quantification counts = %v", quant.Counts)
	}

	evidence := s.Axes[model.AxisEvidenceType]
	if evidence.Total != 1 {
		t.Errorf("evidence total = %d, want 1 (two claims carry no evidence code)", evidence.Total)
	}
}

func TestSummarize_UnrecognizedCodesContributeZero(t *testing.T) {
	claims := []model.Claim{
		{DomainCode: "NOT-A-CODE", ClinicalArea: "", ChangeType: "percent"},
	}

	s := Summarize(claims)

	if s.TotalClaims != 1 {
		t.Errorf("total claims = %d, want 1", s.TotalClaims)
	}
	for axis, counts := range s.Axes {
		if counts.Total != 0 {
			t.Errorf("axis %s total = %d, want 0", axis, counts.Total)
		}
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil)

	if s.TotalClaims != 0 {
		t.Errorf("total claims = %d, want 0", s.TotalClaims)
	}
	if len(s.Axes) != 5 {
		t.Fatalf("expected 5 axes, got %d", len(s.Axes))
	}
	// Every vocabulary code is present even with no claims
	domain := s.Axes[model.AxisDomain]
	if len(domain.Counts) != 8 {
		t.Errorf("domain codes = %d, want 8", len(domain.Counts))
	}
	if domain.Counts["VBC"] != 0 {
		t.Errorf("expected explicit zero for VBC, got %d", domain.Counts["VBC"])
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := model.Claim{DomainCode: "QM", ChangeType: "Q-PCT"}
	b := model.Claim{DomainCode: "PH", ChangeType: "Q-ABS"}
	c := model.Claim{DomainCode: "QM", ChangeType: "Q-NONE"}

	s1 := Summarize([]model.Claim{a, b, c})
	s2 := Summarize([]model.Claim{c, a, b})

	if !reflect.DeepEqual(s1, s2) {
		t.Error("summary must not depend on record order")
	}
}
