package soroban

import (
	"slices"
	"strings"
)

// Binding ties a formula identifier shown to learners to the difficulty
// classes the generator honours for it.
type Binding struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Classes []DifficultyClass `json:"classes"`
}

var bindings = []Binding{
	{ID: "no-formula", Label: "No Formula", Classes: []DifficultyClass{NoFormula}},
	{ID: "small-friend", Label: "Small Friend (5)", Classes: []DifficultyClass{SmallFriend}},
	{ID: "big-friend", Label: "Big Friend (10)", Classes: []DifficultyClass{BigFriend}},
	{ID: "friends", Label: "Small & Big Friends", Classes: []DifficultyClass{SmallFriend, BigFriend}},
	{ID: "mixed", Label: "Mixed", Classes: []DifficultyClass{Mixed}},
}

// synonyms maps normalized alternative spellings used by challenge
// configurations to a binding ID.
var synonyms = map[string]string{
	"noformula":       "no-formula",
	"no-formulas":     "no-formula",
	"direct":          "no-formula",
	"simple":          "no-formula",
	"basic":           "no-formula",
	"none":            "no-formula",
	"smallfriend":     "small-friend",
	"small-friends":   "small-friend",
	"five":            "small-friend",
	"formula-5":       "small-friend",
	"friends-of-5":    "small-friend",
	"5-complement":    "small-friend",
	"five-complement": "small-friend",
	"bigfriend":       "big-friend",
	"big-friends":     "big-friend",
	"ten":             "big-friend",
	"formula-10":      "big-friend",
	"friends-of-10":   "big-friend",
	"10-complement":   "big-friend",
	"ten-complement":  "big-friend",
	"small-and-big":   "friends",
	"both-friends":    "friends",
	"formula-5-10":    "friends",
	"mix":             "mixed",
	"all":             "mixed",
	"combined":        "mixed",
}

// Normalize lowercases id and folds spaces and underscores into hyphens.
func Normalize(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.NewReplacer("_", "-", " ", "-").Replace(id)
	for strings.Contains(id, "--") {
		id = strings.ReplaceAll(id, "--", "-")
	}
	return strings.Trim(id, "-")
}

// Lookup finds the binding for id or one of its synonyms.
func Lookup(id string) (Binding, bool) {
	key := Normalize(id)
	if canonical, ok := synonyms[key]; ok {
		key = canonical
	}
	for _, b := range bindings {
		if b.ID == key {
			return b.clone(), true
		}
	}
	return Binding{}, false
}

// Resolve returns the ordered classes for id. Unknown identifiers resolve to
// NoFormula when fallback is set, so stored configurations written with
// retired names stay generatable; otherwise they are an ErrInvalidConfig.
func Resolve(id string, fallback bool) ([]DifficultyClass, error) {
	if b, ok := Lookup(id); ok {
		return b.Classes, nil
	}
	if fallback {
		return []DifficultyClass{NoFormula}, nil
	}
	return nil, configError("formula_type", "%q is not a known formula", id)
}

// Canonical returns the binding ID id resolves to, applying the NoFormula
// fallback for unknown identifiers.
func Canonical(id string) string {
	if b, ok := Lookup(id); ok {
		return b.ID
	}
	return NoFormula.String()
}

// Label returns the display label of a single class.
func Label(class DifficultyClass) string {
	for _, b := range bindings {
		if len(b.Classes) == 1 && b.Classes[0] == class {
			return b.Label
		}
	}
	return class.String()
}

// Formulas lists every binding in display order.
func Formulas() []Binding {
	out := make([]Binding, len(bindings))
	for i, b := range bindings {
		out[i] = b.clone()
	}
	return out
}

func (b Binding) clone() Binding {
	b.Classes = slices.Clone(b.Classes)
	return b
}
