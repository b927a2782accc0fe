// Package summary splits a model reply into the part meant for the customer
// and the internal summary block that follows the marker.
//
// Grammar:
//
//	reply   = [ preamble ] marker body
//	body    = *( line LF )
//	line    = field / heading / blank
//	field   = [ bullet ] key ":" SP value
//	heading = any other non-blank text, e.g. "Neue Gebäudereinigungs-Anfrage:"
//
// A reply without the marker has no body; its preamble is the whole text.
package summary

import (
	"strings"

	"cleaning-intake/internal/prompt"
)

// ExpectedFields are the keys the instruction prompt asks the model to fill.
var ExpectedFields = []string{
	"Reinigungsart",
	"Objekt/Fläche",
	"Besonderheiten",
	"Terminwunsch",
	"Name",
	"Telefon",
	"E-Mail",
}

// placeholder is what the prompt template uses for an unfilled value.
const placeholder = "..."

type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Reply struct {
	// Raw is the reply exactly as produced by the model.
	Raw string `json:"-"`
	// Preamble is everything before the first marker (the whole reply if
	// there is no marker), with surrounding whitespace removed.
	Preamble string `json:"preamble"`
	// HasSummary reports whether the marker was found.
	HasSummary bool `json:"has_summary"`
	// Summary is the text strictly after the first marker, trimmed.
	Summary  string   `json:"summary"`
	Headings []string `json:"headings,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
}

// Parse never fails: text that does not follow the field syntax is kept as a
// heading so nothing from the summary is lost.
func Parse(raw string) Reply {
	r := Reply{Raw: raw}

	idx := strings.Index(raw, prompt.Marker)
	if idx < 0 {
		r.Preamble = strings.TrimSpace(raw)
		return r
	}

	r.HasSummary = true
	r.Preamble = strings.TrimSpace(raw[:idx])
	r.Summary = strings.TrimSpace(raw[idx+len(prompt.Marker):])

	for _, line := range strings.Split(r.Summary, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if f, ok := parseField(line); ok {
			r.Fields = append(r.Fields, f)
			continue
		}
		r.Headings = append(r.Headings, line)
	}
	return r
}

func parseField(line string) (Field, bool) {
	line = strings.TrimSpace(strings.TrimLeft(line, "-•*"))
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return Field{}, false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return Field{}, false
	}
	return Field{Key: key, Value: value}, true
}

// Field returns the value of the first field whose key matches, ignoring case.
func (r Reply) Field(key string) (string, bool) {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return "", false
}

// Missing lists the expected fields that are absent or still hold the
// template placeholder.
func (r Reply) Missing() []string {
	var missing []string
	for _, key := range ExpectedFields {
		v, ok := r.Field(key)
		if !ok || v == placeholder {
			missing = append(missing, key)
		}
	}
	return missing
}

// Complete reports whether the reply carries a summary with every expected
// field filled.
func (r Reply) Complete() bool {
	return r.HasSummary && len(r.Missing()) == 0
}

// CustomerText is what the customer would see if the internal block were
// stripped.
func (r Reply) CustomerText() string {
	if !r.HasSummary {
		return r.Raw
	}
	return r.Preamble
}
