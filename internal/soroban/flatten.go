package soroban

// FlatTable is the per-digit layout used by surfaces that reveal a drill one
// operand at a time. Index i holds the legal operands for ones digit i.
type FlatTable [10]RuleEntry

// Flatten derives the FlatTable for classes from t, so every surface shares
// the generator's notion of what a difficulty allows.
func Flatten(t *Table, classes []DifficultyClass) FlatTable {
	var flat FlatTable
	for d := range flat {
		flat[d] = t.LegalSet(classes, d)
	}
	return flat
}

// FlattenFormula flattens the default table for a formula identifier, with
// the usual NoFormula fallback.
func FlattenFormula(formulaType string) FlatTable {
	classes, _ := Resolve(formulaType, true)
	return Flatten(DefaultTable(), classes)
}
