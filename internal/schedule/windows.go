package schedule

import (
	"sort"

	"github.com/medbook/medbook-api/internal/models"
)

// SortWindows orders windows Mon through Sun, then by start time, giving the
// read path a stable block ordering regardless of row order in the store.
func SortWindows(windows []models.AvailabilityWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		ri, rj := dayRank(windows[i].Weekday), dayRank(windows[j].Weekday)
		if ri != rj {
			return ri < rj
		}
		return windows[i].Start < windows[j].Start
	})
}
