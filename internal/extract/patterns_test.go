package extract

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/claimsift/claimsift/internal/model"
)

func window(text string) model.TextWindow {
	return model.TextWindow{
		DocumentID:  "doc-1",
		WindowIndex: 2,
		Text:        text,
		StartOffset: 0,
		EndOffset:   len(text),
	}
}

func TestExtractor_PercentImprovement(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("Our care management program improved by 15% over the baseline period."))

	if len(res.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(res.Claims))
	}
	claim := res.Claims[0]
	if claim.ChangeType != model.QuantPCT {
		t.Errorf("change type = %q, want %q", claim.ChangeType, model.QuantPCT)
	}
	if claim.ChangeMagnitude == nil || *claim.ChangeMagnitude != 15.0 {
		t.Errorf("change magnitude = %v, want 15.0", claim.ChangeMagnitude)
	}
	if claim.ChangeDirection != "increase" {
		t.Errorf("change direction = %q, want increase", claim.ChangeDirection)
	}
	if claim.Method != model.MethodPattern {
		t.Errorf("method = %q, want pattern", claim.Method)
	}
	if claim.WindowIndex != 2 {
		t.Errorf("window index = %d, want 2", claim.WindowIndex)
	}
}

func TestExtractor_PercentagePoints(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("Readmissions were reduced by 3.2 percentage points in the second year."))

	if len(res.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(res.Claims))
	}
	claim := res.Claims[0]
	if claim.ChangeType != model.QuantPPT {
		t.Errorf("change type = %q, want %q", claim.ChangeType, model.QuantPPT)
	}
	if claim.ChangeMagnitude == nil || *claim.ChangeMagnitude != 3.2 {
		t.Errorf("change magnitude = %v, want 3.2", claim.ChangeMagnitude)
	}
	if claim.ChangeDirection != "decrease" {
		t.Errorf("change direction = %q, want decrease", claim.ChangeDirection)
	}
}

func TestExtractor_QualityMeasure(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("Performance on HEDIS W30 exceeded the national median."))

	if len(res.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(res.Claims))
	}
	claim := res.Claims[0]
	if claim.MetricName != "W30" {
		t.Errorf("metric name = %q, want W30", claim.MetricName)
	}
	if claim.MetricSteward != "NCQA" {
		t.Errorf("metric steward = %q, want NCQA", claim.MetricSteward)
	}
}

func TestExtractor_StatedTarget(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("We set a target of 85% for timely prenatal care."))

	found := false
	for _, c := range res.Claims {
		if c.ChangeType == model.QuantTGT {
			found = true
			if c.ChangeMagnitude == nil || *c.ChangeMagnitude != 85.0 {
				t.Errorf("target magnitude = %v, want 85.0", c.ChangeMagnitude)
			}
		}
	}
	if !found {
		t.Error("expected a Q-TGT claim")
	}
}

func TestExtractor_Commitments(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("We will achieve a 90% screening rate across all counties. Within 24 months the plan expects to improve member satisfaction scores substantially."))

	if len(res.Commitments) != 2 {
		t.Fatalf("expected 2 commitments, got %d", len(res.Commitments))
	}
	if !strings.Contains(res.Commitments[0].VerbatimText, "achieve a 90% screening rate") {
		t.Errorf("unexpected commitment excerpt: %q", res.Commitments[0].VerbatimText)
	}
}

func TestExtractor_Partnerships(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("The plan has contracted with Grady Health System, and is working with Emory University on evaluation."))

	if len(res.Partnerships) != 2 {
		t.Fatalf("expected 2 partnerships, got %d", len(res.Partnerships))
	}
	names := []string{res.Partnerships[0].PartnerName, res.Partnerships[1].PartnerName}
	if names[0] != "Grady Health System" {
		t.Errorf("partner 0 = %q, want Grady Health System", names[0])
	}
	if !strings.Contains(names[1], "Emory University") {
		t.Errorf("partner 1 = %q, want Emory University mention", names[1])
	}
}

func TestExtractor_ExcerptRadiusAndCap(t *testing.T) {
	e := NewExtractor(200, 150)

	pad := strings.Repeat("x", 500)
	res := e.Extract(window(pad + " improved by 10% " + pad))

	if len(res.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(res.Claims))
	}
	excerpt := res.Claims[0].VerbatimText
	if len(excerpt) > 300 {
		t.Errorf("excerpt length %d exceeds the 300 char cap", len(excerpt))
	}
	if !strings.Contains(excerpt, "improved by 10%") {
		t.Errorf("excerpt should contain the match, got %q", excerpt)
	}
}

func TestExtractor_ExcerptNeverSplitsRunes(t *testing.T) {
	e := NewExtractor(0, 0)

	// Multi-byte padding puts the radius and cap boundaries mid-rune
	pad := strings.Repeat("é", 300)
	res := e.Extract(window(pad + " improved by 10% " + pad))

	if len(res.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(res.Claims))
	}
	excerpt := res.Claims[0].VerbatimText
	if !utf8.ValidString(excerpt) {
		t.Errorf("excerpt is not valid UTF-8: %q", excerpt)
	}
	if !strings.Contains(excerpt, "improved by 10%") {
		t.Errorf("excerpt should contain the match, got %q", excerpt)
	}
	if len(excerpt) > maxExcerptLen {
		t.Errorf("excerpt length %d exceeds the cap", len(excerpt))
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := strings.Repeat("é", 10)

	got := truncate(s, 5)
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 2) {
		t.Errorf("truncate = %q, want two runes", got)
	}
	if got := truncate("ascii", 10); got != "ascii" {
		t.Errorf("truncate below the cap = %q, want unchanged", got)
	}
}

func TestExtractor_Idempotent(t *testing.T) {
	e := NewExtractor(0, 0)
	w := window("HEDIS AAP rates improved by 12% after we partnered with Boston Medical Center.")

	first := e.Extract(w)
	second := e.Extract(w)

	if !reflect.DeepEqual(first, second) {
		t.Error("extraction must be idempotent with order-stable output")
	}
}

func TestExtractor_EmptyResultIsValid(t *testing.T) {
	e := NewExtractor(0, 0)

	res := e.Extract(window("Nothing quantitative to see here."))
	if len(res.Claims)+len(res.Commitments)+len(res.Partnerships) != 0 {
		t.Error("expected empty result for text without matches")
	}
}
