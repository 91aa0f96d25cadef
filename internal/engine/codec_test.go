package engine

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHabitsWireFormat(t *testing.T) {
	created := time.UnixMilli(1760425200000)
	h := Habit{
		ID:         "abc",
		Name:       "Walk",
		Type:       TypeLeaf,
		Frequency:  Monthly,
		Difficulty: Easy,
		Reminder:   Reminder{Enabled: true, Time: "08:00"},
		CreatedAt:  created,
	}

	data, err := EncodeHabits([]Habit{h})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)

	r := raw[0]
	assert.Equal(t, "abc", r["id"])
	assert.Equal(t, "leaf", r["type"])
	assert.Equal(t, "monthly", r["frequency"])
	assert.Equal(t, "easy", r["difficulty"])
	assert.Equal(t, float64(1760425200000), r["createdAt"])
	assert.Equal(t, float64(0), r["lastCompletedAt"], "never completed is 0")
	assert.Equal(t, []any{}, r["completions"])
	assert.Equal(t, map[string]any{"enabled": true, "time": "08:00"}, r["reminder"])
	assert.Contains(t, r, "levelXP")
	assert.Contains(t, r, "evolutions")
}

func TestEncodeEmptyCollection(t *testing.T) {
	data, err := EncodeHabits(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeHabits(t *testing.T) {
	data := `[{"id":"a","name":"Run","type":"aqua","frequency":"weekly","difficulty":"hard",
		"reminder":{"enabled":false,"time":""},"createdAt":1760425200000,
		"lastCompletedAt":1760428800000,"completions":[1760428800000],
		"streak":1,"levelXP":8,"evolutions":0,"icon":"ignored"}]`

	habits, fixed, err := DecodeHabits([]byte(data))
	require.NoError(t, err)
	assert.Zero(t, fixed)
	require.Len(t, habits, 1)

	h := habits[0]
	assert.Equal(t, "a", h.ID)
	assert.Equal(t, TypeAqua, h.Type)
	assert.Equal(t, Weekly, h.Frequency)
	assert.Equal(t, Hard, h.Difficulty)
	assert.Equal(t, int64(1760428800000), h.LastCompletedAt.UnixMilli())
	assert.Equal(t, 8, h.LevelXP)
	assert.Equal(t, 1, h.Streak)
}

func TestDecodeHabitsRepairs(t *testing.T) {
	data := `[
		{"id":"xp","name":"a","type":"flame","frequency":"daily","difficulty":"easy","levelXP":150,"evolutions":0},
		{"id":"neg","name":"b","type":"flame","frequency":"daily","difficulty":"easy","streak":-3,"levelXP":-5},
		{"id":"last","name":"c","type":"flame","frequency":"daily","difficulty":"easy",
			"completions":[1000,2000],"lastCompletedAt":1000},
		{"id":"enum","name":"d","type":"THUNDER","frequency":"yearly","difficulty":"?"},
		{"id":"","name":"no id"},
		{"id":"xp","name":"duplicate"}
	]`

	habits, fixed, err := DecodeHabits([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 6, fixed)
	require.Len(t, habits, 4)

	assert.Equal(t, MaxXP, habits[0].LevelXP)
	assert.Equal(t, MaxStage, habits[0].Evolutions)
	assert.Equal(t, "a", habits[0].Name)

	assert.Zero(t, habits[1].Streak)
	assert.Zero(t, habits[1].LevelXP)

	assert.Equal(t, int64(2000), habits[2].LastCompletedAt.UnixMilli())

	assert.Equal(t, DefaultType, habits[3].Type)
	assert.Equal(t, DefaultFrequency, habits[3].Frequency)
	assert.Equal(t, DefaultDifficulty, habits[3].Difficulty)
}

func TestDecodeHabitsTolerantCasing(t *testing.T) {
	habits, fixed, err := DecodeHabits([]byte(`[{"id":"a","type":" Leaf ","frequency":"MONTHLY","difficulty":"Hard"}]`))
	require.NoError(t, err)
	assert.Zero(t, fixed)
	assert.Equal(t, TypeLeaf, habits[0].Type)
	assert.Equal(t, Monthly, habits[0].Frequency)
	assert.Equal(t, Hard, habits[0].Difficulty)
}

func TestDecodeHabitsInvalid(t *testing.T) {
	for _, in := range []string{"", "{", `{"id":"a"}`, "42"} {
		_, _, err := DecodeHabits([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	l := New(nil, discardLogger())
	t0 := time.UnixMilli(at(2026, 10, 14, 9, 0).UnixMilli())
	h, _ := l.AddHabit(draft("Yoga", Medium, Weekly), t0)
	l.RecordCompletion(h.ID, t0.Add(time.Hour))

	data, err := EncodeHabits(l.Snapshot())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[{"))

	back, fixed, err := DecodeHabits(data)
	require.NoError(t, err)
	assert.Zero(t, fixed)
	require.Len(t, back, 1)
	assert.Equal(t, h.ID, back[0].ID)
	assert.Equal(t, 5, back[0].LevelXP)
	assert.Equal(t, 1, back[0].Streak)
	assert.True(t, back[0].LastCompletedAt.Equal(t0.Add(time.Hour)))
}
