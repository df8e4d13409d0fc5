package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// promptTemplate mirrors the exchange the session primer was recorded
// against. Every {token} below must have an entry in the substitution map
// built by Build.
const promptTemplate = "Create an optimal trip itinerary based on the specified location, duration, budget, and number of persons. " +
	"Generate Travel Plan for Location: {location} for {noOfDays} days with no of People or group: {people} with Budget: {budget}; " +
	"give me list of hotels with hotel name, description, address, rating, price, location in map, coordinates, image url; " +
	"also for the same create the itinerary for {noOfDays} days, suggest places, give name, details, pricing, timings, place images urls, location (coordinate or in map); " +
	"Remember all have to cover in the {budget} level budget. " +
	"Important: give the result in JSON Format"

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z]+\}`)

// PromptBuilder renders trip requests into model prompts. It is a pure
// function of the request and the template; placeholders are substituted
// globally and free-text values have template syntax escaped so a location
// named "{budget}" cannot rewrite the prompt.
type PromptBuilder struct {
	template string
	maxDays  int
}

func NewPromptBuilder(maxDays int) *PromptBuilder {
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	return &PromptBuilder{template: promptTemplate, maxDays: maxDays}
}

// Build validates the request and substitutes every placeholder occurrence.
func (b *PromptBuilder) Build(req TripRequest) (string, error) {
	req = req.Normalize()
	if err := req.Validate(b.maxDays); err != nil {
		return "", err
	}

	values := map[string]string{
		"location": escapeBraces(req.Location),
		"noOfDays": strconv.Itoa(req.Days),
		"people":   escapeBraces(req.GroupSize),
		"budget":   req.BudgetTier,
	}

	prompt := b.template
	for name, value := range values {
		prompt = strings.ReplaceAll(prompt, "{"+name+"}", value)
	}

	if leftover := placeholderPattern.FindString(prompt); leftover != "" {
		return "", fmt.Errorf("prompt template placeholder %s has no substitution", leftover)
	}
	return prompt, nil
}

func escapeBraces(s string) string {
	s = strings.ReplaceAll(s, "{", "(")
	return strings.ReplaceAll(s, "}", ")")
}
