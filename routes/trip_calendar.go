package routes

import (
	"errors"
	"fmt"
	"net/http"

	"backend/planner"

	"github.com/pocketbase/pocketbase/core"
)

// TripCalendar exports a stored trip as a downloadable iCalendar file.
func (h *Handlers) TripCalendar(e *core.RequestEvent) error {
	tripID := e.Request.PathValue("tripId")

	record, err := h.Store.Get(e.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, planner.ErrTripNotFound) {
			return e.JSON(http.StatusNotFound, map[string]string{
				"error": "trip not found",
			})
		}
		e.App.Logger().Error("trip lookup failed", "error", err, "tripId", tripID)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": "unable to load trip",
		})
	}

	cal, err := planner.BuildCalendar(*record)
	if err != nil {
		e.App.Logger().Error("calendar export failed", "error", err, "tripId", tripID)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": "unable to export calendar",
		})
	}

	e.Response.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=trip-%s.ics", tripID))
	return e.String(http.StatusOK, cal)
}
