package engine

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HabitsKey is the store key holding the whole habit collection.
const HabitsKey = "pixel-trainer-habits-v1"

// BlobStore persists opaque values by key. GetBlob returns nil, nil for a
// key that was never written.
type BlobStore interface {
	GetBlob(key string) ([]byte, error)
	PutBlob(key string, value []byte) error
}

// CompletionResult describes what a completion changed. Hosts use it to
// decide on toasts, sounds and evolution effects.
type CompletionResult struct {
	Habit       Habit
	Reward      int // difficulty reward
	XPGained    int // reward after the cap
	PriorStreak int
	NewStreak   int
	StageBefore int
	StageAfter  int
}

// Evolved reports whether the completion moved the habit to a new stage.
func (r CompletionResult) Evolved() bool { return r.StageAfter > r.StageBefore }

// RemoveResult describes a removal. Removed is false for unknown ids.
type RemoveResult struct {
	Removed bool
	Habit   Habit
}

// ReconcileResult lists the habits whose streak was zeroed.
type ReconcileResult struct {
	Reset []string
}

func (r ReconcileResult) Count() int { return len(r.Reset) }

// Ledger owns the habit collection. It is the only mutator of habits and
// writes the full collection to its store after every change. All methods
// are safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	habits  []Habit
	store   BlobStore
	logger  *slog.Logger
	saveErr error
}

// New returns an empty ledger backed by store. A nil store keeps the
// collection in memory only.
func New(store BlobStore, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{store: store, logger: logger}
}

// Open loads the persisted collection and zeroes stale streaks as of now.
// Unreadable or corrupt data starts an empty collection.
func Open(store BlobStore, logger *slog.Logger, now time.Time) *Ledger {
	l := New(store, logger)
	if err := l.load(); err != nil {
		l.logger.Warn("starting with empty habit collection", slog.Any("error", err))
	}
	l.ReconcileIdleStreaks(now)
	return l
}

func (l *Ledger) load() error {
	if l.store == nil {
		return nil
	}
	data, err := l.store.GetBlob(HabitsKey)
	if err != nil {
		return &StorageError{Op: "load", Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	habits, fixed, err := DecodeHabits(data)
	if err != nil {
		return &StorageError{Op: "load", Err: err}
	}
	if fixed > 0 {
		l.logger.Warn("repaired persisted habits", slog.Int("records", fixed))
	}

	l.mu.Lock()
	l.habits = habits
	l.mu.Unlock()

	l.logger.Debug("habits loaded", slog.Int("count", len(habits)))
	return nil
}

// saveLocked writes the collection. Callers hold l.mu.
func (l *Ledger) saveLocked() {
	if l.store == nil {
		return
	}
	data, err := EncodeHabits(l.habits)
	if err == nil {
		err = l.store.PutBlob(HabitsKey, data)
	}
	if err != nil {
		l.saveErr = &StorageError{Op: "save", Err: err}
		l.logger.Error("persist habits", slog.Any("error", err))
		return
	}
	l.saveErr = nil
}

// SaveErr returns the error from the most recent write, or nil.
func (l *Ledger) SaveErr() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.saveErr
}

func (l *Ledger) indexLocked(id string) int {
	for i := range l.habits {
		if l.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// AddHabit creates a habit from draft with zeroed progression. Unknown
// enum values fall back to their defaults.
func (l *Ledger) AddHabit(draft Draft, now time.Time) (Habit, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Habit{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	h := Habit{
		ID:         uuid.NewString(),
		Name:       name,
		Type:       draft.Type,
		Frequency:  draft.Frequency,
		Difficulty: draft.Difficulty,
		Reminder:   draft.Reminder,
		CreatedAt:  now,
	}
	if !h.Type.IsValid() {
		h.Type = DefaultType
	}
	if !h.Frequency.IsValid() {
		h.Frequency = DefaultFrequency
	}
	if !h.Difficulty.IsValid() {
		h.Difficulty = DefaultDifficulty
	}
	if !h.Reminder.Enabled {
		h.Reminder.Time = ""
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for l.indexLocked(h.ID) >= 0 {
		h.ID = uuid.NewString()
	}
	l.habits = append(l.habits, h)
	l.saveLocked()

	l.logger.Debug("habit added", slog.String("habit_id", h.ID), slog.String("frequency", string(h.Frequency)))
	return h.clone(), nil
}

// RecordCompletion registers a completion of id at now.
func (l *Ledger) RecordCompletion(id string, now time.Time) (CompletionResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return CompletionResult{}, &NotFoundError{ID: id}
	}
	h := &l.habits[i]

	res := CompletionResult{
		Reward:      h.Difficulty.Reward(),
		PriorStreak: h.Streak,
		StageBefore: h.Evolutions,
	}

	h.Streak = NextStreak(h.LastCompletedAt, h.Streak, h.Frequency, now)
	h.Completions = append(h.Completions, now)
	h.LastCompletedAt = now

	xp := min(MaxXP, h.LevelXP+res.Reward)
	res.XPGained = xp - h.LevelXP
	h.LevelXP = xp
	h.Evolutions = StageFor(xp)

	res.NewStreak = h.Streak
	res.StageAfter = h.Evolutions
	res.Habit = h.clone()

	l.saveLocked()

	l.logger.Debug("habit completed",
		slog.String("habit_id", id),
		slog.Int("streak", h.Streak),
		slog.Int("level_xp", h.LevelXP),
	)
	return res, nil
}

// RemoveHabit deletes id. Unknown ids are a no-op.
func (l *Ledger) RemoveHabit(id string) RemoveResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return RemoveResult{}
	}
	removed := l.habits[i]
	l.habits = append(l.habits[:i:i], l.habits[i+1:]...)
	l.saveLocked()

	l.logger.Debug("habit removed", slog.String("habit_id", id))
	return RemoveResult{Removed: true, Habit: removed}
}

// ReconcileIdleStreaks zeroes the streak of every habit whose last
// completion is outside its current window. Nothing else is modified.
// The store is only written when a streak actually changed.
func (l *Ledger) ReconcileIdleStreaks(now time.Time) ReconcileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	var res ReconcileResult
	for i := range l.habits {
		h := &l.habits[i]
		if h.Streak != 0 && IdleReset(h.LastCompletedAt, h.Frequency, now) {
			h.Streak = 0
			res.Reset = append(res.Reset, h.ID)
		}
	}
	if res.Count() > 0 {
		l.saveLocked()
		l.logger.Info("idle streaks reset", slog.Int("count", res.Count()))
	}
	return res
}

// Snapshot returns a deep copy of the collection in insertion order.
func (l *Ledger) Snapshot() []Habit {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Habit, len(l.habits))
	for i, h := range l.habits {
		out[i] = h.clone()
	}
	return out
}

// Get returns a copy of the habit with id.
func (l *Ledger) Get(id string) (Habit, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexLocked(id); i >= 0 {
		return l.habits[i].clone(), true
	}
	return Habit{}, false
}

// Len is the number of habits.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.habits)
}
