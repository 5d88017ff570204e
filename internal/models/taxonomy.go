package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mohit-756/interview-bot/internal/coerce"
)

// Taxonomy category keys
const (
	KeyMandatoryProgramming = "mandatory_programming"
	KeyDomainSkills         = "domain_skills"
	KeyOptionalDomains      = "optional_domains"
	KeyTools                = "tools"
	KeySoftSkills           = "soft_skills"
)

// TaxonomyKeys lists the categories in their canonical order
var TaxonomyKeys = []string{
	KeyMandatoryProgramming,
	KeyDomainSkills,
	KeyOptionalDomains,
	KeyTools,
	KeySoftSkills,
}

// JDTaxonomy is the five-category skill breakdown of a job description.
// Every category always serializes as a list, never null.
type JDTaxonomy struct {
	MandatoryProgramming []string `json:"mandatory_programming"`
	DomainSkills         []string `json:"domain_skills"`
	OptionalDomains      []string `json:"optional_domains"`
	Tools                []string `json:"tools"`
	SoftSkills           []string `json:"soft_skills"`
}

// TaxonomyFromMap builds a taxonomy from loosely typed JSON. Missing or
// non-list categories become empty; elements are stringified and trimmed,
// and blanks are dropped.
func TaxonomyFromMap(m map[string]any) JDTaxonomy {
	return JDTaxonomy{
		MandatoryProgramming: cleanList(m[KeyMandatoryProgramming]),
		DomainSkills:         cleanList(m[KeyDomainSkills]),
		OptionalDomains:      cleanList(m[KeyOptionalDomains]),
		Tools:                cleanList(m[KeyTools]),
		SoftSkills:           cleanList(m[KeySoftSkills]),
	}
}

func cleanList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s := strings.TrimSpace(coerce.String(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Category returns the list stored under key, or nil for an unknown key
func (t JDTaxonomy) Category(key string) []string {
	switch key {
	case KeyMandatoryProgramming:
		return t.MandatoryProgramming
	case KeyDomainSkills:
		return t.DomainSkills
	case KeyOptionalDomains:
		return t.OptionalDomains
	case KeyTools:
		return t.Tools
	case KeySoftSkills:
		return t.SoftSkills
	}
	return nil
}

// AllSkills concatenates the five categories in canonical order, duplicates included
func (t JDTaxonomy) AllSkills() []string {
	var out []string
	for _, key := range TaxonomyKeys {
		out = append(out, t.Category(key)...)
	}
	return out
}

// Normalized returns a copy with nil categories replaced by empty lists
func (t JDTaxonomy) Normalized() JDTaxonomy {
	fix := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return JDTaxonomy{
		MandatoryProgramming: fix(t.MandatoryProgramming),
		DomainSkills:         fix(t.DomainSkills),
		OptionalDomains:      fix(t.OptionalDomains),
		Tools:                fix(t.Tools),
		SoftSkills:           fix(t.SoftSkills),
	}
}

// MarshalJSON always emits all five keys as lists
func (t JDTaxonomy) MarshalJSON() ([]byte, error) {
	type plain JDTaxonomy
	return json.Marshal(plain(t.Normalized()))
}

// UnmarshalJSON accepts any JSON. Anything that is not an object yields an
// empty taxonomy; categories are cleaned like TaxonomyFromMap.
func (t *JDTaxonomy) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
	}
	*t = TaxonomyFromMap(raw)
	return nil
}

// SkillWeight is one HR-assigned skill weight
type SkillWeight struct {
	Skill  string
	Weight int
}

// SkillWeights is an ordered skill→weight mapping. It encodes as a JSON
// object and keeps the key order of the source document.
type SkillWeights []SkillWeight

// Set updates the weight of an existing skill in place or appends a new one
func (w *SkillWeights) Set(skill string, weight int) {
	for i := range *w {
		if (*w)[i].Skill == skill {
			(*w)[i].Weight = weight
			return
		}
	}
	*w = append(*w, SkillWeight{Skill: skill, Weight: weight})
}

// Get returns the weight for skill and whether it is present
func (w SkillWeights) Get(skill string) (int, bool) {
	for _, sw := range w {
		if sw.Skill == skill {
			return sw.Weight, true
		}
	}
	return 0, false
}

// MarshalJSON writes the weights as an object in slice order
func (w SkillWeights) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sw := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sw.Skill)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", sw.Weight)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object preserving key order. Values are coerced to
// integers (unparseable values become 0). Non-object input yields no weights.
func (w *SkillWeights) UnmarshalJSON(data []byte) error {
	*w = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var out SkillWeights
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			break
		}
		out.Set(key, coerce.Int(value, 0))
	}
	*w = out
	return nil
}
