package planner

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxDays caps the itinerary length a request may ask for.
const DefaultMaxDays = 5

// Budget tiers the prompt understands.
const (
	BudgetCheap    = "Cheap"
	BudgetModerate = "Moderate"
	BudgetLuxury   = "Luxury"
)

var budgetTiers = []string{BudgetCheap, BudgetModerate, BudgetLuxury}

var titleCaser = cases.Title(language.English)

// TripRequest is the caller's description of the trip to generate.
type TripRequest struct {
	Location   string `json:"location"`
	Days       int    `json:"days"`
	GroupSize  string `json:"groupSize"`
	BudgetTier string `json:"budgetTier"`
}

// Normalize trims the free-text fields and maps budget tier labels onto their
// canonical casing ("luxury" -> "Luxury").
func (r TripRequest) Normalize() TripRequest {
	r.Location = strings.TrimSpace(r.Location)
	r.GroupSize = strings.TrimSpace(r.GroupSize)
	r.BudgetTier = titleCaser.String(strings.ToLower(strings.TrimSpace(r.BudgetTier)))
	return r
}

// Validate checks every field the prompt template needs. maxDays guards the
// upper bound on itinerary length.
func (r TripRequest) Validate(maxDays int) error {
	if r.Location == "" {
		return &ValidationError{Field: "location", Reason: "must not be empty"}
	}
	if r.Days < 1 || r.Days > maxDays {
		return &ValidationError{Field: "days", Reason: fmt.Sprintf("must be between 1 and %d", maxDays)}
	}
	if r.GroupSize == "" {
		return &ValidationError{Field: "groupSize", Reason: "must not be empty"}
	}
	if !lo.Contains(budgetTiers, r.BudgetTier) {
		return &ValidationError{Field: "budgetTier", Reason: "must be one of " + strings.Join(budgetTiers, ", ")}
	}
	return nil
}
