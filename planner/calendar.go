package planner

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/ringsaturn/tzf"
	"github.com/samber/lo"
)

var (
	tzOnce   sync.Once
	tzFinder tzf.F
	tzErr    error
)

// timezoneFinder lazily initializes the shared timezone lookup; building the
// default finder decompresses the embedded polygon data, so it happens once.
func timezoneFinder() (tzf.F, error) {
	tzOnce.Do(func() {
		tzFinder, tzErr = tzf.NewDefaultFinder()
	})
	return tzFinder, tzErr
}

// BuildCalendar renders a stored trip as an iCalendar document with one
// all-day event per itinerary day. Day boundaries are anchored to the trip's
// local timezone, resolved from the first hotel's coordinates. The start date
// comes from the plan when the model provided one, otherwise from the trip
// id's creation time.
func BuildCalendar(record TripRecord) (string, error) {
	if len(record.Plan.Itinerary.Days) == 0 {
		return "", fmt.Errorf("trip %s has no itinerary days", record.TripID)
	}

	loc := tripLocation(record)
	start := tripStart(record, loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//backend//trip-planner//EN")

	for i, day := range record.Plan.Itinerary.Days {
		dayStart := start.AddDate(0, 0, i)

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d", record.TripID, i+1))
		event.SetCreatedTime(time.Now())
		event.SetAllDayStartAt(dayStart)
		event.SetAllDayEndAt(dayStart.AddDate(0, 0, 1))

		summary := fmt.Sprintf("Day %d", i+1)
		if day.Theme != "" {
			summary = fmt.Sprintf("Day %d: %s", i+1, day.Theme)
		}
		event.SetSummary(summary)
		event.SetLocation(record.Plan.TripDetails.Location)
		event.SetDescription(describeDay(day))
	}

	return cal.Serialize(), nil
}

func tripLocation(record TripRecord) *time.Location {
	if len(record.Plan.Hotels) == 0 {
		return time.UTC
	}
	finder, err := timezoneFinder()
	if err != nil {
		return time.UTC
	}
	coords := record.Plan.Hotels[0].Coordinates
	name := finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func tripStart(record TripRecord, loc *time.Location) time.Time {
	if record.Plan.TripDetails.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", record.Plan.TripDetails.StartDate, loc); err == nil {
			return t
		}
	}
	if nanos, err := strconv.ParseInt(record.TripID, 10, 64); err == nil {
		created := time.Unix(0, nanos).In(loc)
		return time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, loc)
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func describeDay(day Day) string {
	var lines []string
	if names := lo.Map(day.Places, func(p Place, _ int) string { return p.Name }); len(names) > 0 {
		lines = append(lines, "Places: "+strings.Join(names, ", "))
	}
	if len(day.Activities) > 0 {
		lines = append(lines, "Activities: "+strings.Join(day.Activities, "; "))
	}
	return strings.Join(lines, "\n")
}
