// Package schedule holds the pure scheduling core: discretizing recurring
// weekly availability into bookable slots and compacting it into summaries.
// Nothing here touches the database, so every function is safe for any
// number of concurrent callers.
package schedule

import (
	"sort"
	"time"

	"github.com/medbook/medbook-api/internal/models"
)

// DefaultGranularity is the step used to discretize a window into slots.
const DefaultGranularity = 30 * time.Minute

// timeLayout is the wall-clock format used across the wire and the store.
const timeLayout = "15:04"

// Slots expands the windows matching the target date's weekday into an
// ordered, deduplicated list of "HH:MM" start times. A slot is emitted as
// long as its start precedes the window end, even when the slot itself would
// run past it; callers rely on that boundary behaviour, so it is not clipped.
// No availability on that weekday yields an empty list, not an error.
func Slots(windows []models.AvailabilityWindow, date time.Time, granularity time.Duration) []string {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	day := date.Format("Mon")
	seen := make(map[string]struct{})
	slots := make([]string, 0)

	for _, w := range windows {
		if w.Weekday != day {
			continue
		}
		start, err := time.Parse(timeLayout, w.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(timeLayout, w.End)
		if err != nil || !start.Before(end) {
			continue
		}

		for cursor := start; cursor.Before(end); cursor = cursor.Add(granularity) {
			slot := cursor.Format(timeLayout)
			if _, dup := seen[slot]; dup {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}

	sort.Strings(slots)
	return slots
}
