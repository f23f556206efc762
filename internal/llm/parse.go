package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodeArray parses a model response as a JSON array of records.
// Parsing is tolerant: a direct parse is attempted first; on failure the
// raw text is scanned for the first balanced array-like substring (models
// sometimes wrap the array in prose despite instructions). If both fail
// the response counts as zero records, never an error.
func DecodeArray(raw string) []json.RawMessage {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items
	}

	if sub, ok := balancedArray(raw); ok {
		if err := json.Unmarshal([]byte(sub), &items); err == nil {
			return items
		}
	}

	return nil
}

// balancedArray returns the first balanced top-level array substring,
// tracking string and escape state so brackets inside values don't
// terminate the scan
func balancedArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
		default:
			switch c {
			case '"':
				inString = true
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}

// flexFloat tolerates numeric fields that arrive as numbers, numeric
// strings, or null
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		str = strings.TrimSuffix(strings.TrimSpace(str), "%")
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			f.value = &v
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		f.value = &v
	}
	return nil
}

// flexString tolerates free-form fields that arrive as strings, numbers,
// or null
type flexString struct {
	value string
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			f.value = str
		}
		return nil
	}
	f.value = s
	return nil
}

// flexInt is flexFloat's integer counterpart (years, mostly)
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var ff flexFloat
	_ = ff.UnmarshalJSON(data)
	if ff.value != nil {
		v := int(*ff.value)
		f.value = &v
	}
	return nil
}
