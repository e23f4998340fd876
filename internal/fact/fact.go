// Package fact defines the multiplication facts drilled by a practice session.
package fact

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinOperand = 1
	MaxOperand = 10
)

// Fact is an ordered operand pair. (a, b) and (b, a) are distinct scheduling units.
type Fact struct {
	A int `yaml:"a" db:"a"`
	B int `yaml:"b" db:"b"`
}

func New(a, b int) Fact {
	return Fact{A: a, B: b}
}

// Product returns the correct answer of the fact
func (f Fact) Product() int {
	return f.A * f.B
}

// Key is the stable string form used as a map key in stored records
func (f Fact) Key() string {
	return fmt.Sprintf("%d|%d", f.A, f.B)
}

func (f Fact) String() string {
	return fmt.Sprintf("%d × %d", f.A, f.B)
}

// Prompt is the question shown to the learner
func (f Fact) Prompt() string {
	return f.String() + " = ?"
}

func (f Fact) Valid() bool {
	return IsOperand(f.A) && IsOperand(f.B)
}

func IsOperand(n int) bool {
	return n >= MinOperand && n <= MaxOperand
}

// ParseKey parses a key produced by Key
func ParseKey(key string) (Fact, error) {
	left, right, ok := strings.Cut(key, "|")
	if !ok {
		return Fact{}, fmt.Errorf("invalid fact key %q", key)
	}
	a, err := strconv.Atoi(left)
	if err != nil {
		return Fact{}, fmt.Errorf("strconv.Atoi(%s) > %w", left, err)
	}
	b, err := strconv.Atoi(right)
	if err != nil {
		return Fact{}, fmt.Errorf("strconv.Atoi(%s) > %w", right, err)
	}
	f := New(a, b)
	if !f.Valid() {
		return Fact{}, fmt.Errorf("fact %q is out of range", key)
	}
	return f, nil
}

// Table returns the ten facts of a table: a ranges over 1..10 and b is fixed
func Table(b int) []Fact {
	facts := make([]Fact, 0, MaxOperand)
	for a := MinOperand; a <= MaxOperand; a++ {
		facts = append(facts, New(a, b))
	}
	return facts
}

// Grid returns every fact of the 10×10 grid in row-major order
func Grid() []Fact {
	facts := make([]Fact, 0, MaxOperand*MaxOperand)
	for a := MinOperand; a <= MaxOperand; a++ {
		for b := MinOperand; b <= MaxOperand; b++ {
			facts = append(facts, New(a, b))
		}
	}
	return facts
}

// AllTables reports whether tables covers every table from 1 to 10
func AllTables(tables []int) bool {
	seen := make(map[int]struct{}, len(tables))
	for _, t := range tables {
		if IsOperand(t) {
			seen[t] = struct{}{}
		}
	}
	return len(seen) == MaxOperand
}
