package tui

import (
	"time"

	"github.com/sadopc/pixeltrainer/internal/engine"
	"github.com/sadopc/pixeltrainer/internal/reminder"
)

// reminderModel drives the reminder table and the day-rollover streak
// reconcile from the app tick. It holds no timers of its own.
type reminderModel struct {
	ledger  *engine.Ledger
	sched   reminder.Scheduler
	enabled bool

	day time.Time // local midnight of the last tick
}

func newReminderModel(l *engine.Ledger, enabled bool, now time.Time) reminderModel {
	r := reminderModel{
		ledger:  l,
		enabled: enabled,
		day:     midnight(now),
	}
	r.sync(now)
	return r
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sync rebuilds the table from the ledger. Removed habits and disabled
// reminders drop out.
func (r *reminderModel) sync(now time.Time) {
	r.sched.Sync(r.ledger.Snapshot(), now)
}

func (r *reminderModel) setEnabled(on bool) {
	r.enabled = on
}

// tick returns the reminders due at now and, on the first tick of a new
// local day, the streaks that were reset.
func (r *reminderModel) tick(now time.Time) ([]reminder.Item, engine.ReconcileResult) {
	var res engine.ReconcileResult
	if today := midnight(now); !today.Equal(r.day) {
		r.day = today
		res = r.ledger.ReconcileIdleStreaks(now)
		r.sync(now)
	}

	due := r.sched.Fire(now)
	if !r.enabled {
		return nil, res
	}
	return due, res
}

func (r reminderModel) next() (reminder.Item, bool) {
	if !r.enabled {
		return reminder.Item{}, false
	}
	return r.sched.Pending().Next()
}
