package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionType tags a blog section.
type SectionType string

const (
	SectionIntro            SectionType = "intro"
	SectionComparison       SectionType = "comparison"
	SectionCodeExamples     SectionType = "code_examples"
	SectionAdvancedFeatures SectionType = "advanced_features"
	SectionBenefits         SectionType = "benefits"
	SectionToolsShowcase    SectionType = "tools_showcase"
	SectionBestPractices    SectionType = "best_practices"
	SectionConclusion       SectionType = "conclusion"
)

// Known reports whether t is one of the section kinds the editor understands.
func (t SectionType) Known() bool {
	switch t {
	case SectionIntro, SectionComparison, SectionCodeExamples, SectionAdvancedFeatures,
		SectionBenefits, SectionToolsShowcase, SectionBestPractices, SectionConclusion:
		return true
	}
	return false
}

type FeatureCard struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Gradient    string `json:"gradient"`
}

type ComparisonTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type CodeExample struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// SectionItem is a card, tool or practice entry. The editor gives these no
// fixed shape.
type SectionItem map[string]any

// Section is one entry of Blog.Sections.
//
// A section is either one of the known kinds, with only the fields that kind
// carries, or freeform. A freeform section holds the document exactly as it
// was submitted and is written back byte for byte. Anything that does not
// decode cleanly as its declared kind (an unknown type, extra keys from the
// raw JSON editor, wrong field types) becomes freeform instead of being
// partially applied.
type Section struct {
	Type     SectionType `json:"type" validate:"notblank"`
	Title    string
	Subtitle string

	Features  []FeatureCard    // intro, advanced_features
	Table     *ComparisonTable // comparison
	Examples  []CodeExample    // code_examples
	Cards     []SectionItem    // benefits
	Tools     []SectionItem    // tools_showcase
	Practices []SectionItem    // best_practices
	Content   string           // benefits, conclusion

	Freeform json.RawMessage
}

// NewFreeformSection wraps an opaque section document.
func NewFreeformSection(doc json.RawMessage) (Section, error) {
	var head struct {
		Type SectionType `json:"type"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return Section{}, err
	}
	return Section{Type: head.Type, Freeform: append(json.RawMessage(nil), doc...)}, nil
}

func (s Section) IsFreeform() bool {
	return s.Freeform != nil
}

type sectionHead struct {
	Type     SectionType `json:"type"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
}

type introSection struct {
	sectionHead
	Features []FeatureCard `json:"features"`
}

type comparisonSection struct {
	sectionHead
	Table ComparisonTable `json:"table"`
}

type codeExamplesSection struct {
	sectionHead
	Examples []CodeExample `json:"examples"`
}

type benefitsSection struct {
	sectionHead
	Cards   []SectionItem `json:"cards"`
	Content string        `json:"content"`
}

type toolsSection struct {
	sectionHead
	Tools []SectionItem `json:"tools"`
}

type practicesSection struct {
	sectionHead
	Practices []SectionItem `json:"practices"`
}

type conclusionSection struct {
	sectionHead
	Content string `json:"content"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.IsFreeform() {
		return s.Freeform, nil
	}
	head := sectionHead{Type: s.Type, Title: s.Title, Subtitle: s.Subtitle}
	switch s.Type {
	case SectionIntro, SectionAdvancedFeatures:
		return json.Marshal(introSection{head, orEmpty(s.Features)})
	case SectionComparison:
		table := ComparisonTable{}
		if s.Table != nil {
			table = *s.Table
		}
		table.Headers = orEmpty(table.Headers)
		table.Rows = orEmpty(table.Rows)
		return json.Marshal(comparisonSection{head, table})
	case SectionCodeExamples:
		return json.Marshal(codeExamplesSection{head, orEmpty(s.Examples)})
	case SectionBenefits:
		return json.Marshal(benefitsSection{head, orEmpty(s.Cards), s.Content})
	case SectionToolsShowcase:
		return json.Marshal(toolsSection{head, orEmpty(s.Tools)})
	case SectionBestPractices:
		return json.Marshal(practicesSection{head, orEmpty(s.Practices)})
	case SectionConclusion:
		return json.Marshal(conclusionSection{head, s.Content})
	}
	return nil, fmt.Errorf("section type %q has no typed form, use a freeform section", s.Type)
}

// UnmarshalJSON requires only an object with a string type. Anything a typed
// kind cannot hold, including a mistyped title, is kept as a freeform section.
func (s *Section) UnmarshalJSON(b []byte) error {
	freeform, err := NewFreeformSection(b)
	if err != nil {
		return err
	}
	if freeform.Type.Known() {
		if typed, ok := decodeTyped(freeform.Type, b); ok {
			*s = typed
			return nil
		}
	}
	*s = freeform
	return nil
}

// decodeTyped decodes b strictly as kind t. It reports false when the document
// carries keys or values that kind does not allow.
func decodeTyped(t SectionType, b []byte) (Section, bool) {
	out := Section{Type: t}
	var err error
	switch t {
	case SectionIntro, SectionAdvancedFeatures:
		var v introSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Features = v.Title, v.Subtitle, v.Features
	case SectionComparison:
		var v comparisonSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Table = v.Title, v.Subtitle, &v.Table
	case SectionCodeExamples:
		var v codeExamplesSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Examples = v.Title, v.Subtitle, v.Examples
	case SectionBenefits:
		var v benefitsSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Cards, out.Content = v.Title, v.Subtitle, v.Cards, v.Content
	case SectionToolsShowcase:
		var v toolsSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Tools = v.Title, v.Subtitle, v.Tools
	case SectionBestPractices:
		var v practicesSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Practices = v.Title, v.Subtitle, v.Practices
	case SectionConclusion:
		var v conclusionSection
		err = decodeStrict(b, &v)
		out.Title, out.Subtitle, out.Content = v.Title, v.Subtitle, v.Content
	default:
		return Section{}, false
	}
	if err != nil {
		return Section{}, false
	}
	return out, true
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
