package soroban

import (
	"fmt"
	"slices"
)

// DifficultyClass is a family of bead techniques a drill may require.
type DifficultyClass int

const (
	// NoFormula allows only direct bead moves: nothing crosses the 5 bead or
	// the 10 boundary.
	NoFormula DifficultyClass = iota
	// SmallFriend adds moves that cross the 5 bead with a 5-complement.
	SmallFriend
	// BigFriend adds moves that carry or borrow one place with a 10-complement.
	BigFriend
	// Mixed is the union of the three classes above.
	Mixed
)

// String returns the canonical identifier of the class.
func (c DifficultyClass) String() string {
	switch c {
	case NoFormula:
		return "no-formula"
	case SmallFriend:
		return "small-friend"
	case BigFriend:
		return "big-friend"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("difficulty(%d)", int(c))
	}
}

// Valid reports whether c is one of the defined classes.
func (c DifficultyClass) Valid() bool {
	return c >= NoFormula && c <= Mixed
}

// MarshalText encodes the class as its canonical identifier.
func (c DifficultyClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid difficulty class %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts any identifier known to Resolve that maps to a
// single class.
func (c *DifficultyClass) UnmarshalText(text []byte) error {
	classes, err := Resolve(string(text), false)
	if err != nil {
		return err
	}
	if len(classes) != 1 {
		return configError("difficulty", "%q names more than one class", string(text))
	}
	*c = classes[0]
	return nil
}

// ownClasses are the classes that carry their own table entries; Mixed is
// always derived from them.
var ownClasses = [...]DifficultyClass{NoFormula, SmallFriend, BigFriend}

// RuleEntry lists the positive single-digit operands that may be added to or
// subtracted from a column showing OnesDigit.
type RuleEntry struct {
	OnesDigit int   `json:"ones_digit"`
	Add       []int `json:"add"`
	Subtract  []int `json:"subtract"`
}

func (e RuleEntry) clone() RuleEntry {
	return RuleEntry{
		OnesDigit: e.OnesDigit,
		Add:       slices.Clone(e.Add),
		Subtract:  slices.Clone(e.Subtract),
	}
}

// Table holds, for each class and ones digit, the operands that class
// introduces. A Table is immutable once built and safe for concurrent use.
type Table struct {
	own [len(ownClasses)][10]RuleEntry
}

// NewTable builds a custom table. Entries may be given for NoFormula,
// SmallFriend and BigFriend; digits without an entry have no operands.
// Operands are deduplicated and sorted.
func NewTable(entries map[DifficultyClass][]RuleEntry) (*Table, error) {
	t := emptyTable()
	for class, list := range entries {
		if class < NoFormula || class >= Mixed {
			return nil, configError("table", "entries for %s cannot be set directly", class)
		}
		seen := [10]bool{}
		for _, e := range list {
			if e.OnesDigit < 0 || e.OnesDigit > 9 {
				return nil, configError("table", "%s ones digit %d is out of range", class, e.OnesDigit)
			}
			if seen[e.OnesDigit] {
				return nil, configError("table", "%s ones digit %d listed twice", class, e.OnesDigit)
			}
			seen[e.OnesDigit] = true
			add, err := normalizeOperands(class, e.OnesDigit, e.Add)
			if err != nil {
				return nil, err
			}
			sub, err := normalizeOperands(class, e.OnesDigit, e.Subtract)
			if err != nil {
				return nil, err
			}
			t.own[class][e.OnesDigit] = RuleEntry{OnesDigit: e.OnesDigit, Add: add, Subtract: sub}
		}
	}
	return t, nil
}

func normalizeOperands(class DifficultyClass, digit int, ops []int) ([]int, error) {
	out := make([]int, 0, len(ops))
	for _, op := range ops {
		if op < 1 || op > 9 {
			return nil, configError("table", "%s ones digit %d has operand %d outside 1..9", class, digit, op)
		}
		out = append(out, op)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func emptyTable() *Table {
	t := &Table{}
	for c := range t.own {
		for d := range t.own[c] {
			t.own[c][d] = RuleEntry{OnesDigit: d, Add: []int{}, Subtract: []int{}}
		}
	}
	return t
}

var defaultTable = buildDefaultTable()

// DefaultTable returns the table derived from the soroban bead model.
func DefaultTable() *Table {
	return defaultTable
}

func buildDefaultTable() *Table {
	t := emptyTable()
	for d := 0; d <= 9; d++ {
		for op := 1; op <= 9; op++ {
			c := classifyAdd(d, op)
			t.own[c][d].Add = append(t.own[c][d].Add, op)
			c = classifySubtract(d, op)
			t.own[c][d].Subtract = append(t.own[c][d].Subtract, op)
		}
	}
	return t
}

// Own returns the operands class itself introduces at digit d. Mixed has no
// entries of its own and yields an empty entry.
func (t *Table) Own(class DifficultyClass, d int) RuleEntry {
	if class < NoFormula || class >= Mixed || d < 0 || d > 9 {
		return RuleEntry{OnesDigit: d, Add: []int{}, Subtract: []int{}}
	}
	return t.own[class][d].clone()
}

// Legal returns the operands legal at digit d under class. SmallFriend and
// BigFriend each extend the NoFormula set; Mixed is the union of all three.
func (t *Table) Legal(class DifficultyClass, d int) RuleEntry {
	switch class {
	case NoFormula:
		return t.union(d, NoFormula)
	case SmallFriend:
		return t.union(d, NoFormula, SmallFriend)
	case BigFriend:
		return t.union(d, NoFormula, BigFriend)
	case Mixed:
		return t.union(d, NoFormula, SmallFriend, BigFriend)
	default:
		return RuleEntry{OnesDigit: d, Add: []int{}, Subtract: []int{}}
	}
}

// LegalSet returns the union of Legal over classes.
func (t *Table) LegalSet(classes []DifficultyClass, d int) RuleEntry {
	var own []DifficultyClass
	for _, class := range classes {
		switch class {
		case NoFormula:
			own = append(own, NoFormula)
		case SmallFriend, BigFriend:
			own = append(own, NoFormula, class)
		case Mixed:
			own = append(own, ownClasses[:]...)
		}
	}
	return t.union(d, own...)
}

func (t *Table) union(d int, classes ...DifficultyClass) RuleEntry {
	out := RuleEntry{OnesDigit: d, Add: []int{}, Subtract: []int{}}
	if d < 0 || d > 9 {
		return out
	}
	for _, c := range classes {
		out.Add = append(out.Add, t.own[c][d].Add...)
		out.Subtract = append(out.Subtract, t.own[c][d].Subtract...)
	}
	slices.Sort(out.Add)
	slices.Sort(out.Subtract)
	out.Add = slices.Compact(out.Add)
	out.Subtract = slices.Compact(out.Subtract)
	return out
}

// Classify reports which technique a signed single-digit operation needs on
// a column showing d, according to the bead model.
func Classify(d, op int) DifficultyClass {
	if op < 0 {
		return classifySubtract(d, -op)
	}
	return classifyAdd(d, op)
}

// A column value d is shown as one upper bead worth 5 and up to four lower
// beads: d = 5*upper + lower.
func beads(d int) (upper, lower int) {
	return d / 5, d % 5
}

func classifyAdd(d, a int) DifficultyClass {
	upper, lower := beads(d)
	switch {
	case d+a >= 10:
		return BigFriend
	case a < 5 && lower+a <= 4:
		return NoFormula
	case a >= 5 && upper == 0 && lower+a-5 <= 4:
		return NoFormula
	default:
		// +a = +5 -(5-a)
		return SmallFriend
	}
}

func classifySubtract(d, s int) DifficultyClass {
	upper, lower := beads(d)
	switch {
	case s > d:
		return BigFriend
	case s < 5 && lower >= s:
		return NoFormula
	case s >= 5 && upper == 1 && lower >= s-5:
		return NoFormula
	default:
		// -s = -5 +(5-s)
		return SmallFriend
	}
}
