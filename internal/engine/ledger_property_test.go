package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propBase = time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)

// playback adds one habit per kind (difficulty k%3, frequency k/3) and completes them
// round-robin, advancing the clock by each step in minutes.
func playback(l *Ledger, kinds []int, steps []int64) ([]Habit, time.Time) {
	now := propBase
	var ids []string
	for _, k := range kinds {
		h, _ := l.AddHabit(Draft{
			Name:       "h",
			Difficulty: allDifficulties[k%3],
			Frequency:  allFrequencies[(k/3)%3],
		}, now)
		ids = append(ids, h.ID)
	}
	if len(ids) == 0 {
		return nil, now
	}
	for i, step := range steps {
		now = now.Add(time.Duration(step) * time.Minute)
		l.RecordCompletion(ids[i%len(ids)], now)
	}
	return l.Snapshot(), now
}

func TestProgressionInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("XP stays in bounds and evolutions follow XP", prop.ForAll(
		func(kinds []int, steps []int64) bool {
			habits, _ := playback(New(nil, discardLogger()), kinds, steps)
			for _, h := range habits {
				if h.LevelXP < 0 || h.LevelXP > MaxXP {
					return false
				}
				if h.Evolutions != min(MaxStage, h.LevelXP/XPPerStage) {
					return false
				}
				if h.Streak < 0 {
					return false
				}
				if n := len(h.Completions); n > 0 && !h.LastCompletedAt.Equal(h.Completions[n-1]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.IntRange(0, 8)),
		gen.SliceOf(gen.Int64Range(0, 60*24*40)),
	))

	properties.Property("completion streak is prior+1 or 1", prop.ForAll(
		func(kind int, steps []int64) bool {
			l := New(nil, discardLogger())
			h, _ := l.AddHabit(Draft{
				Name:       "h",
				Difficulty: allDifficulties[kind%3],
				Frequency:  allFrequencies[(kind/3)%3],
			}, propBase)

			now := propBase
			for _, step := range steps {
				now = now.Add(time.Duration(step) * time.Minute)
				res, err := l.RecordCompletion(h.ID, now)
				if err != nil {
					return false
				}
				if res.NewStreak != res.PriorStreak+1 && res.NewStreak != 1 {
					return false
				}
				if res.XPGained < 0 || res.XPGained > res.Reward {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 8),
		gen.SliceOf(gen.Int64Range(0, 60*24*40)),
	))

	properties.TestingRun(t)
}

func TestReconcileProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	properties.Property("reconciling twice equals reconciling once", prop.ForAll(
		func(kinds []int, steps []int64, idle int64) bool {
			l := New(nil, discardLogger())
			_, now := playback(l, kinds, steps)
			later := now.Add(time.Duration(idle) * time.Minute)

			l.ReconcileIdleStreaks(later)
			once := l.Snapshot()
			second := l.ReconcileIdleStreaks(later)
			return second.Count() == 0 && reflect.DeepEqual(once, l.Snapshot())
		},
		gen.SliceOfN(3, gen.IntRange(0, 8)),
		gen.SliceOf(gen.Int64Range(0, 60*24*10)),
		gen.Int64Range(0, 60*24*70),
	))

	properties.Property("reconcile touches nothing but streaks", prop.ForAll(
		func(kinds []int, steps []int64, idle int64) bool {
			l := New(nil, discardLogger())
			before, now := playback(l, kinds, steps)
			l.ReconcileIdleStreaks(now.Add(time.Duration(idle) * time.Minute))
			after := l.Snapshot()

			for i := range before {
				b, a := before[i], after[i]
				if a.Streak != b.Streak && a.Streak != 0 {
					return false
				}
				b.Streak, a.Streak = 0, 0
				if !reflect.DeepEqual(a, b) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.IntRange(0, 8)),
		gen.SliceOf(gen.Int64Range(0, 60*24*10)),
		gen.Int64Range(0, 60*24*70),
	))

	properties.TestingRun(t)
}

func TestUnknownIDProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown ids leave the collection unchanged", prop.ForAll(
		func(kinds []int, steps []int64, id string) bool {
			l := New(nil, discardLogger())
			before, now := playback(l, kinds, steps)

			if l.RemoveHabit(id).Removed {
				return false
			}
			_, err := l.RecordCompletion(id, now)
			if !errors.Is(err, ErrNotFound) {
				return false
			}
			return reflect.DeepEqual(before, l.Snapshot())
		},
		gen.SliceOfN(3, gen.IntRange(0, 8)),
		gen.SliceOf(gen.Int64Range(0, 60*24)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
