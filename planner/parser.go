package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParsePlan turns a raw model reply into a validated TripPlan. The reply may
// be wrapped in a markdown code fence; everything inside must be the JSON the
// session primer demonstrates. Missing optional fields get empty defaults,
// missing required fields reject the whole plan.
func ParsePlan(raw string) (*TripPlan, error) {
	text := stripCodeFence(raw)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, &SchemaError{Raw: raw, Err: fmt.Errorf("reply is not a JSON object: %w", err)}
	}
	for _, required := range []string{"tripDetails", "hotels", "itinerary"} {
		if _, ok := keys[required]; !ok {
			return nil, &SchemaError{Raw: raw, Err: fmt.Errorf("missing required key %q", required)}
		}
	}

	var plan TripPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, &SchemaError{Raw: raw, Err: err}
	}

	if err := validatePlan(&plan); err != nil {
		return nil, &SchemaError{Raw: raw, Err: err}
	}
	return &plan, nil
}

func validatePlan(plan *TripPlan) error {
	if len(plan.Hotels) == 0 {
		return errors.New("plan contains no hotels")
	}
	for i, hotel := range plan.Hotels {
		if strings.TrimSpace(hotel.Name) == "" {
			return fmt.Errorf("hotel %d has no name", i)
		}
		if !hotel.Coordinates.Valid() {
			return fmt.Errorf("hotel %q has invalid coordinates", hotel.Name)
		}
	}

	if len(plan.Itinerary.Days) == 0 {
		return errors.New("itinerary contains no days")
	}
	for _, day := range plan.Itinerary.Days {
		for i, place := range day.Places {
			if strings.TrimSpace(place.Name) == "" {
				return fmt.Errorf("day %d place %d has no name", day.Index, i)
			}
			if !place.Coordinates.Valid() {
				return fmt.Errorf("place %q has invalid coordinates", place.Name)
			}
		}
	}
	return nil
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// drop the fence line together with its optional language label
		text = text[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}
