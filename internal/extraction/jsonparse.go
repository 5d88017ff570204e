package extraction

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Parse failures. Malformed model output is expected, so callers branch on
// these rather than treating them as faults.
var (
	ErrNoJSONObject  = errors.New("no JSON object in text")
	ErrUnbalanced    = errors.New("unbalanced braces")
	ErrInvalidJSON   = errors.New("candidate object is not valid JSON")
	ErrNotJSONObject = errors.New("parsed value is not an object")
)

var codeFencePattern = regexp.MustCompile("(?i)```(?:json)?")

// StripCodeFences removes Markdown code-fence markers, keeping their content
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}

// ExtractJSONObject finds the first balanced {...} span in text and parses it.
// Braces inside JSON strings are counted like any other brace.
func ExtractJSONObject(text string) (map[string]any, error) {
	text = StripCodeFences(text)

	start := strings.IndexByte(text, '{')
	if start == -1 {
		return nil, ErrNoJSONObject
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return decodeObject(text[start : i+1])
			}
		}
	}

	return nil, ErrUnbalanced
}

func decodeObject(candidate string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}
