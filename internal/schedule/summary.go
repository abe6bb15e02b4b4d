package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/medbook/medbook-api/internal/models"
)

var weekOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// unknownDayRank places weekdays outside the canonical set after Sunday.
const unknownDayRank = 99

// Summary compacts a doctor's weekly windows into a human-readable line:
// weekdays sharing an identical time range collapse into one segment, e.g.
// "Mon, Wed: 9:00 AM - 12:00 PM | Fri: 2:00 PM - 5:00 PM". The result only
// depends on the set of rows, never on their order. Empty input yields "".
func Summary(windows []models.AvailabilityWindow) string {
	type timeRange struct {
		start string
		end   string
	}
	buckets := make(map[timeRange][]string)
	for _, w := range windows {
		if w.Weekday == "" || w.Start == "" || w.End == "" {
			continue
		}
		key := timeRange{start: w.Start, end: w.End}
		buckets[key] = append(buckets[key], w.Weekday)
	}

	type segment struct {
		rank int
		text string
	}
	segments := make([]segment, 0, len(buckets))
	for key, days := range buckets {
		start := format12Hour(key.start)
		end := format12Hour(key.end)
		if start == "" || end == "" {
			continue
		}

		days = dedupeDays(days)
		segments = append(segments, segment{
			rank: dayRank(days[0]),
			text: strings.Join(days, ", ") + ": " + start + " - " + end,
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		if segments[i].rank != segments[j].rank {
			return segments[i].rank < segments[j].rank
		}
		return segments[i].text < segments[j].text
	})

	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.text
	}
	return strings.Join(parts, " | ")
}

func dayRank(day string) int {
	for i, d := range weekOrder {
		if d == day {
			return i
		}
	}
	return unknownDayRank
}

// dedupeDays removes duplicates and orders Mon through Sun, unknown days last.
func dedupeDays(days []string) []string {
	seen := make(map[string]struct{}, len(days))
	unique := make([]string, 0, len(days))
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool {
		ri, rj := dayRank(unique[i]), dayRank(unique[j])
		if ri != rj {
			return ri < rj
		}
		return unique[i] < unique[j]
	})
	return unique
}

// format12Hour renders "HH:MM" as 12-hour wall clock with the leading zero
// stripped, matching what patients see elsewhere ("9:00 AM", "12:30 PM").
func format12Hour(hhmm string) string {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(t.Format("03:04 PM"), "0")
}
