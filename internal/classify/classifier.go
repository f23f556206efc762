package classify

import (
	"regexp"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// typeRule maps a document type to the filename patterns that imply it.
// Rule order is load-bearing: the first rule with a matching pattern wins,
// so a filename containing both "rfp" and "attachment" classifies as rfp.
type typeRule struct {
	docType  model.DocumentType
	patterns []*regexp.Regexp
}

// orgRule maps an organization to its filename aliases, including spelling
// variants and subsidiary brand names. First match wins.
type orgRule struct {
	name     string
	patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Classifier infers document metadata from filenames. It is a pure
// function of its input: no side effects, and absence of a match is a
// valid null result, not a failure.
type Classifier struct {
	typeRules []typeRule
	orgRules  []orgRule
}

// NewClassifier creates a classifier with the built-in pattern tables
func NewClassifier() *Classifier {
	return &Classifier{
		typeRules: []typeRule{
			{model.DocTypeRFP, compile(`rfp`, `rfq`, `rfa`, `rfr`, `rfi`)},
			{model.DocTypeProposal, compile(`proposal`, `response`, `redacted.*proposal`, `application`)},
			{model.DocTypeScoring, compile(`scor`, `evaluat`, `rating`)},
			{model.DocTypeContract, compile(`contract`, `model.*contract`, `executed`)},
			{model.DocTypeAward, compile(`award`, `intent.*award`, `notice`)},
			{model.DocTypeAmendment, compile(`amend`, `addend`, `add\d`)},
			{model.DocTypeAttachment, compile(`attach`, `appendix`, `appendices`, `exhibit`, `schedule`)},
			{model.DocTypeProtest, compile(`protest`, `appeal`)},
		},
		orgRules: []orgRule{
			{"Aetna", compile(`aetna`, `cvs.*aetna`, `cvs`)},
			{"Anthem", compile(`anthem`, `bcbs`, `blue.*cross`, `wellpoint`, `elevance`)},
			{"Centene", compile(`centene`, `wellcare`, `ambetter`, `health.*net`, `meridian`, `magnolia`, `truecare`, `sunflower`, `peach.*state`, `buckeye`)},
			{"Cigna", compile(`cigna`)},
			{"Humana", compile(`humana`)},
			{"Molina", compile(`molina`)},
			{"UnitedHealthcare", compile(`united`, `uhc`, `optum`, `uhg`)},
			{"Amerigroup", compile(`amerigroup`)},
			{"AmeriHealth Caritas", compile(`amerihealth`)},
			{"CareSource", compile(`caresource`)},
			{"BCBS_Regional", compile(`bcbs.*michigan`, `blue.*cross.*michigan`, `hap`)},
			{"Kaiser", compile(`kaiser`)},
			{"Health Choice Arizona", compile(`health.*choice.*arizona`, `azch`, `care1st`)},
			{"Mercy Care", compile(`mercy.*care`, `banner.*ufc`)},
			{"AlohaCare", compile(`alohacare`)},
			{"HMSA", compile(`hmsa`)},
			{"Ohana", compile(`ohana`)},
			{"Neighborhood Health Plan", compile(`neighborhood`, `nhp`)},
			{"Tufts Health", compile(`tufts`)},
			{"Priority Health", compile(`priority.*health`)},
			{"McLaren", compile(`mclaren`)},
			{"UPHP", compile(`uphp`)},
			{"Harmony", compile(`harmony`)},
			{"IlliniCare", compile(`illinicare`)},
			{"CountyCare", compile(`countycare`)},
			{"NextLevel", compile(`nextlevel`)},
			{"Trusted", compile(`trusted`)},
			{"The Health Plan", compile(`the.*health.*plan`)},
			{"UniCare", compile(`unicare`)},
			{"Medical Mutual", compile(`medical.*mutual`)},
			{"Total Care", compile(`total.*care`)},
		},
	}
}

// Year extraction patterns, tried in order. The first strategy that
// produces a match wins.
var (
	explicitYearRe = regexp.MustCompile(`20(1[7-9]|2[0-4])`)
	monthYearRe    = regexp.MustCompile(`(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[-_]?(\d{2})`)
	numericDateRe  = regexp.MustCompile(`\d{1,2}[-_]\d{1,2}[-_](\d{2})\b`)
)

// Classify infers metadata for a document from its filename and the
// jurisdiction directory it was found in
func (c *Classifier) Classify(state, filename string) model.DocumentMetadata {
	return model.DocumentMetadata{
		DocumentID:   filename,
		State:        state,
		Organization: c.Organization(filename),
		Year:         c.Year(filename),
		DocumentType: c.DocumentType(filename),
	}
}

// DocumentType classifies a filename against the ordered type table.
// Returns DocTypeOther when no pattern matches.
func (c *Classifier) DocumentType(filename string) model.DocumentType {
	lower := strings.ToLower(filename)
	for _, rule := range c.typeRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.docType
			}
		}
	}
	return model.DocTypeOther
}

// Organization resolves an organization alias from the filename.
// Returns "" when no alias matches; the name is never guessed.
func (c *Classifier) Organization(filename string) string {
	lower := strings.ToLower(filename)
	for _, rule := range c.orgRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.name
			}
		}
	}
	return ""
}

// Year extracts a procurement year from the filename. Three strategies are
// tried in order: an explicit 4-digit year in [2017, 2024], a month
// abbreviation with a 2-digit year, and a numeric date with a 2-digit
// year. Ambiguous 2-digit years are windowed: values below 50 map to
// 2000+value, the rest to 1900+value. Returns 0 when nothing matches.
func (c *Classifier) Year(filename string) int {
	if m := explicitYearRe.FindString(filename); m != "" {
		return atoiYear(m)
	}
	lower := strings.ToLower(filename)
	if m := monthYearRe.FindStringSubmatch(lower); m != nil {
		return windowYear(atoiYear(m[2]))
	}
	if m := numericDateRe.FindStringSubmatch(filename); m != nil {
		return windowYear(atoiYear(m[1]))
	}
	return 0
}

func atoiYear(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func windowYear(twoDigit int) int {
	if twoDigit < 50 {
		return 2000 + twoDigit
	}
	return 1900 + twoDigit
}
