package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/claimsift/claimsift/internal/model"
)

const maxExcerptLen = 300

// claimTemplate is one deterministic extraction rule. Each template is
// tagged with the taxonomy codes it implies; a match produces a candidate
// claim with those codes pre-filled.
type claimTemplate struct {
	name  string
	re    *regexp.Regexp
	apply func(m []string, excerpt string) model.Claim
}

var claimTemplates = []claimTemplate{
	{
		name: "percent-improvement",
		re:   regexp.MustCompile(`(?i)(improved?|increased?|reduced?|decreased?|achieved?)\s+(?:by\s+)?(\d+(?:\.\d+)?)\s*(percent|%|percentage points?)`),
		apply: func(m []string, excerpt string) model.Claim {
			magnitude, _ := strconv.ParseFloat(m[2], 64)
			changeType := model.QuantPCT
			if strings.HasPrefix(strings.ToLower(m[3]), "percentage point") {
				changeType = model.QuantPPT
			}
			return model.Claim{
				VerbatimText:    excerpt,
				ChangeType:      changeType,
				ChangeMagnitude: &magnitude,
				ChangeDirection: changeDirection(m[1]),
			}
		},
	},
	{
		name: "quality-measure",
		re:   regexp.MustCompile(`(?:HEDIS|CAHPS|NQF|CMS)\s+(?:measure\s+)?([A-Z0-9\-]+)`),
		apply: func(m []string, excerpt string) model.Claim {
			return model.Claim{
				VerbatimText:  excerpt,
				MetricName:    m[1],
				MetricSteward: "NCQA",
			}
		},
	},
	{
		name: "stated-target",
		re:   regexp.MustCompile(`(?i)(?:target|goal|commit|achieve)\s+(?:of\s+)?(\d+(?:\.\d+)?)\s*(?:percent|%)`),
		apply: func(m []string, excerpt string) model.Claim {
			magnitude, _ := strconv.ParseFloat(m[1], 64)
			return model.Claim{
				VerbatimText:    excerpt,
				ChangeType:      model.QuantTGT,
				ChangeMagnitude: &magnitude,
			}
		},
	},
}

var commitmentRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:we\s+will|we\s+commit|we\s+shall|we\s+propose\s+to|our\s+goal\s+is\s+to)\s+([^.]+)`),
	regexp.MustCompile(`(?i)(?:by\s+year\s+\d|within\s+\d+\s+(?:months?|years?))[^.]+(?:achieve|reach|attain|improve)[^.]+`),
}

var partnershipRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:partner(?:ship|ed|ing)?|collaborat(?:e|ion|ing)|contract(?:ed)?)\s+with\s+([A-Z][^,.]+)`),
	regexp.MustCompile(`(?i)(?:in\s+partnership\s+with|working\s+with)\s+([A-Z][^,.]+)`),
}

func changeDirection(verb string) string {
	switch strings.ToLower(strings.TrimSuffix(verb, "d")) {
	case "improve", "increase":
		return "increase"
	case "reduce", "decrease":
		return "decrease"
	default:
		return "NA"
	}
}

// Extractor matches a fixed list of regex templates against window text.
// It is deterministic and idempotent; overlapping or duplicate candidates
// are allowed and are not deduplicated here.
type Extractor struct {
	leftRadius  int
	rightRadius int
}

// NewExtractor creates a pattern extractor with the given excerpt context
// radii. Non-positive radii fall back to the defaults (200 left, 150
// right).
func NewExtractor(leftRadius, rightRadius int) *Extractor {
	if leftRadius <= 0 {
		leftRadius = 200
	}
	if rightRadius <= 0 {
		rightRadius = 150
	}
	return &Extractor{leftRadius: leftRadius, rightRadius: rightRadius}
}

// Result holds the three candidate record sequences for one window
type Result struct {
	Claims       []model.Claim
	Commitments  []model.Commitment
	Partnerships []model.Partnership
}

// Extract runs every template against the window text. An empty result is
// valid; there are no failure conditions.
func (e *Extractor) Extract(win model.TextWindow) Result {
	var res Result
	text := win.Text

	for _, tpl := range claimTemplates {
		for _, idx := range tpl.re.FindAllStringSubmatchIndex(text, -1) {
			m := submatches(text, idx)
			claim := tpl.apply(m, e.excerpt(text, idx[0], idx[1]))
			claim.DocumentID = win.DocumentID
			claim.WindowIndex = win.WindowIndex
			claim.Method = model.MethodPattern
			res.Claims = append(res.Claims, claim)
		}
	}

	for _, re := range commitmentRes {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			res.Commitments = append(res.Commitments, model.Commitment{
				VerbatimText: truncate(text[idx[0]:idx[1]], maxExcerptLen),
				Provenance: model.Provenance{
					DocumentID:  win.DocumentID,
					WindowIndex: win.WindowIndex,
					Method:      model.MethodPattern,
				},
			})
		}
	}

	for _, re := range partnershipRes {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			m := submatches(text, idx)
			res.Partnerships = append(res.Partnerships, model.Partnership{
				PartnerName: truncate(strings.TrimSpace(m[1]), 100),
				Provenance: model.Provenance{
					DocumentID:  win.DocumentID,
					WindowIndex: win.WindowIndex,
					Method:      model.MethodPattern,
				},
			})
		}
	}

	return res
}

// excerpt captures a fixed-size textual context centered on the match,
// truncated to the excerpt cap. Radius boundaries widen to the nearest
// rune start so a multi-byte rune is never split.
func (e *Extractor) excerpt(text string, start, end int) string {
	from := start - e.leftRadius
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	to := end + e.rightRadius
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	return truncate(strings.TrimSpace(text[from:to]), maxExcerptLen)
}

// truncate caps s at n bytes, backing off to a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// submatches resolves FindAllStringSubmatchIndex pairs into strings;
// unmatched groups become ""
func submatches(text string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := 0; i < len(idx); i += 2 {
		if idx[i] >= 0 {
			out[i/2] = text[idx[i]:idx[i+1]]
		}
	}
	return out
}
