// Package samples holds the puzzle sample expressions gocalc was written
// for, with their known answers, and checks an evaluator against them.
package samples

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/sandrolain/gocalc/pkg/evaluator"
)

// Sample is an input with its expected value and canonical rendering.
type Sample struct {
	Input     string
	Want      int64
	Canonical string
}

var registry = map[string]Sample{
	"mixed":      {Input: "5 +6 -   ( 7+ 4) ", Want: 0, Canonical: "5 + 6 - ( 7 + 4 )"},
	"nested":     {Input: "10 + ((51+9)-(-17-3)) + 1", Want: 91, Canonical: "10 + ( ( 51 + 9 ) - ( -17 - 3 ) ) + 1"},
	"single":     {Input: "5", Want: 5, Canonical: "5"},
	"sum":        {Input: "1+2+3", Want: 6, Canonical: "1 + 2 + 3"},
	"paren":      {Input: "(1)", Want: 1, Canonical: "( 1 )"},
	"left-assoc": {Input: "10-3-2", Want: 5, Canonical: "10 - 3 - 2"},
	"spaced":     {Input: " 5  +   6 ", Want: 11, Canonical: "5 + 6"},
	"negative":   {Input: "-17", Want: -17, Canonical: "-17"},
	"double-neg": {Input: "3--4", Want: 7, Canonical: "3 - -4"},
}

// Names returns the sample names in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Get returns the named sample.
func Get(name string) (Sample, bool) {
	s, ok := registry[name]
	return s, ok
}

// Mismatch describes a sample that did not produce its expected output.
type Mismatch struct {
	Name         string
	Sample       Sample
	Got          int64
	GotCanonical string
	Err          error
}

func (m Mismatch) String() string {
	if m.Err != nil {
		return fmt.Sprintf("%s: %q: %v", m.Name, m.Sample.Input, m.Err)
	}
	return fmt.Sprintf("%s: %q: got %d (%q), want %d (%q)",
		m.Name, m.Sample.Input, m.Got, m.GotCanonical, m.Sample.Want, m.Sample.Canonical)
}

// Check evaluates every sample with ev and returns the ones that failed,
// in name order. The error is non-nil only if ctx was cancelled.
func Check(ctx context.Context, ev *evaluator.Evaluator) ([]Mismatch, error) {
	names := Names()
	sources := make([]string, len(names))
	for i, name := range names {
		sources[i] = registry[name].Input
	}

	results, err := ev.EvalMany(ctx, sources)
	if err != nil {
		return nil, err
	}

	var bad []Mismatch
	for i, res := range results {
		s := registry[names[i]]
		if res.Err != nil || res.Value != s.Want || res.Canonical != s.Canonical {
			bad = append(bad, Mismatch{
				Name:         names[i],
				Sample:       s,
				Got:          res.Value,
				GotCanonical: res.Canonical,
				Err:          res.Err,
			})
		}
	}
	return bad, nil
}
