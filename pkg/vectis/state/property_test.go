package state_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// Property: n writes followed by n undos restore the initial value.
func TestUndoInvertsWrites(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("undo inverts every write", prop.ForAll(
		func(values []string) bool {
			s := state.New(nil, state.WithHistoryLimit(len(values)+1))
			for _, v := range values {
				if err := s.SetPath(state.PathSearchQuery, v); err != nil {
					return false
				}
			}
			for range values {
				if !s.Undo() {
					return false
				}
			}
			q, ok := state.GetAs[string](s, state.PathSearchQuery)
			return ok && q == "" && s.HistoryLen() == 0
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: history never exceeds its limit.
func TestHistoryBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("history length is min(writes, limit)", prop.ForAll(
		func(limit, writes int) bool {
			s := state.New(nil, state.WithHistoryLimit(limit))
			for i := 0; i < writes; i++ {
				_ = s.SetPath("n", i)
			}
			want := writes
			if want > limit {
				want = limit
			}
			return s.HistoryLen() == want
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}
