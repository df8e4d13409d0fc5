package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"backend/planner"

	"github.com/pocketbase/pocketbase/core"
)

// Handlers bundles the trip endpoints with their pipeline dependencies.
type Handlers struct {
	Controller *planner.Controller
	Store      planner.RecordStore
}

type generateTripRequest struct {
	planner.TripRequest
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}

// GenerateTrip runs the generation pipeline for one request. The owner comes
// from the authenticated record when there is one, otherwise from the body.
func (h *Handlers) GenerateTrip(e *core.RequestEvent) error {
	var req generateTripRequest
	if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	owner := planner.Owner{Name: req.OwnerName, Email: req.OwnerEmail}
	if e.Auth != nil {
		owner.Name = e.Auth.GetString("name")
		owner.Email = e.Auth.GetString("email")
	}

	result, err := h.Controller.GenerateTrip(e.Request.Context(), req.TripRequest, owner)
	if err != nil {
		return h.writeGenerationError(e, err)
	}
	return e.JSON(http.StatusOK, result)
}

func (h *Handlers) writeGenerationError(e *core.RequestEvent, err error) error {
	var validationErr *planner.ValidationError
	if errors.As(err, &validationErr) {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": validationErr.Error(),
		})
	}

	var schemaErr *planner.SchemaError
	if errors.As(err, &schemaErr) {
		e.App.Logger().Error("trip generation returned malformed plan", "error", err, "raw", schemaErr.Raw)
		return e.JSON(http.StatusBadGateway, map[string]string{
			"error": "the model returned an unusable itinerary, please try again",
		})
	}

	var modelErr *planner.ModelError
	if errors.As(err, &modelErr) {
		e.App.Logger().Error("trip generation model call failed", "error", err)
		return e.JSON(http.StatusBadGateway, map[string]string{
			"error": "itinerary generation is temporarily unavailable, please try again",
		})
	}

	e.App.Logger().Error("trip generation failed", "error", err)
	return e.JSON(http.StatusInternalServerError, map[string]string{
		"error": "trip generation failed",
	})
}

func (h *Handlers) GetTrip(e *core.RequestEvent) error {
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
	return e.JSON(http.StatusOK, record)
}

func (h *Handlers) ListTrips(e *core.RequestEvent) error {
	owner := e.Request.URL.Query().Get("owner")
	if e.Auth != nil {
		owner = e.Auth.GetString("email")
	}
	if owner == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "owner email is required",
		})
	}

	trips, err := h.Store.ListByOwner(e.Request.Context(), owner)
	if err != nil {
		e.App.Logger().Error("trip listing failed", "error", err, "owner", owner)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": "unable to list trips",
		})
	}
	return e.JSON(http.StatusOK, map[string]any{"trips": trips})
}
