package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medbook/medbook-api/internal/models"
)

func TestSummaryGroupsDaysSharingRange(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mon", "09:00", "12:00"),
		window("Wed", "09:00", "12:00"),
	}
	assert.Equal(t, "Mon, Wed: 9:00 AM - 12:00 PM", Summary(windows))
}

func TestSummaryMultipleSegmentsOrderedByEarliestDay(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Fri", "14:00", "17:00"),
		window("Tue", "09:00", "12:00"),
		window("Thu", "09:00", "12:00"),
	}
	assert.Equal(t, "Tue, Thu: 9:00 AM - 12:00 PM | Fri: 2:00 PM - 5:00 PM", Summary(windows))
}

func TestSummaryEmptyInput(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "", Summary([]models.AvailabilityWindow{}))
}

func TestSummaryDeduplicatesDays(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mon", "09:00", "12:00"),
		window("Mon", "09:00", "12:00"),
		window("Wed", "09:00", "12:00"),
	}
	assert.Equal(t, "Mon, Wed: 9:00 AM - 12:00 PM", Summary(windows))
}

func TestSummaryUnknownWeekdaySortsLast(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Holidays", "10:00", "11:00"),
		window("Sun", "09:00", "12:00"),
	}
	assert.Equal(t, "Sun: 9:00 AM - 12:00 PM | Holidays: 10:00 AM - 11:00 AM", Summary(windows))
}

func TestSummaryInvariantUnderPermutation(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mon", "09:00", "12:00"),
		window("Wed", "09:00", "12:00"),
		window("Fri", "14:00", "17:30"),
		window("Sat", "08:00", "10:00"),
		window("Tue", "14:00", "17:30"),
	}
	want := Summary(windows)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]models.AvailabilityWindow, len(windows))
		copy(shuffled, windows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Summary(shuffled))
	}
}

func TestSummarySkipsIncompleteRows(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mon", "", "12:00"),
		window("", "09:00", "12:00"),
		window("Wed", "09:00", "12:00"),
	}
	assert.Equal(t, "Wed: 9:00 AM - 12:00 PM", Summary(windows))
}

func TestSummaryTwelveHourEdges(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Mon", "00:30", "12:00"),
	}
	assert.Equal(t, "Mon: 12:30 AM - 12:00 PM", Summary(windows))
}
