package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar(t *testing.T) {
	record := testRecord("1700000000000000001", "asha@example.com")

	cal, err := BuildCalendar(record)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cal, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(cal, "BEGIN:VEVENT"), "one event per itinerary day")
	assert.Contains(t, cal, "Day 1: Historical Exploration")
	assert.Contains(t, cal, "Day 2: Lakes and City Exploration")
	assert.Contains(t, cal, "LOCATION:Bhopal")
	assert.Contains(t, cal, "Bhojpur Temple")
}

func TestBuildCalendar_EmptyItinerary(t *testing.T) {
	record := testRecord("42", "asha@example.com")
	record.Plan.Itinerary.Days = nil

	_, err := BuildCalendar(record)
	assert.Error(t, err)
}

func TestTripStart_FallsBackToTripID(t *testing.T) {
	record := testRecord("1700000000000000001", "asha@example.com")
	record.Plan.TripDetails.StartDate = ""

	start := tripStart(record, tripLocation(record))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 2023, start.Year(), "nanosecond trip id decodes back to its creation time")
}
