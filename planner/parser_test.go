package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan_PrimerReply(t *testing.T) {
	plan, err := ParsePlan(primerReply)
	require.NoError(t, err)

	assert.Equal(t, "Bhopal", plan.TripDetails.Location)
	assert.Equal(t, "Luxury", plan.TripDetails.BudgetTier, "budgetLevel alias maps onto budgetTier")

	require.Len(t, plan.Hotels, 2)
	assert.Equal(t, "Jehan Numa Palace Hotel", plan.Hotels[0].Name, "hotelName alias maps onto name")
	assert.Equal(t, "₹12,000 - ₹25,000 per night", plan.Hotels[0].PriceRange)
	assert.Equal(t, "https://maps.app.goo.gl/14oFkQv7aB7rYV3T7", plan.Hotels[0].MapLink)
	assert.InDelta(t, 4.6, plan.Hotels[0].Rating, 1e-9)
	assert.InDelta(t, 23.2478, plan.Hotels[0].Coordinates.Latitude, 1e-9)

	require.Len(t, plan.Itinerary.Days, 2)
	assert.Equal(t, 1, plan.Itinerary.Days[0].Index)
	assert.Equal(t, "Historical Exploration", plan.Itinerary.Days[0].Theme)
	require.Len(t, plan.Itinerary.Days[0].Places, 2)
	assert.Equal(t, "Bhojpur Temple", plan.Itinerary.Days[0].Places[0].Name)
}

func TestParsePlan_Idempotent(t *testing.T) {
	first, err := ParsePlan(primerReply)
	require.NoError(t, err)
	second, err := ParsePlan(primerReply)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParsePlan_SchemaFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "not json",
			raw:  "I am sorry, I cannot help with that.",
		},
		{
			name: "missing hotels key",
			raw:  `{"tripDetails": {"location": "X"}, "itinerary": {"days": []}}`,
		},
		{
			name: "missing itinerary key",
			raw:  `{"tripDetails": {"location": "X"}, "hotels": []}`,
		},
		{
			name: "empty hotels",
			raw:  `{"tripDetails": {}, "hotels": [], "itinerary": {"days": [{"day": 1}]}}`,
		},
		{
			name: "hotel without name",
			raw: `{"tripDetails": {}, "hotels": [{"description": "x", "coordinates": {"latitude": 1, "longitude": 2}}],
				"itinerary": {"days": [{"day": 1}]}}`,
		},
		{
			name: "latitude out of range",
			raw: `{"tripDetails": {}, "hotels": [{"name": "H", "coordinates": {"latitude": 123, "longitude": 2}}],
				"itinerary": {"days": [{"day": 1}]}}`,
		},
		{
			name: "place without coordinates",
			raw: `{"tripDetails": {}, "hotels": [{"name": "H", "coordinates": {"latitude": 1, "longitude": 2}}],
				"itinerary": {"days": [{"day": 1, "places": [{"name": "P"}]}]}}`,
		},
		{
			name: "no days",
			raw:  `{"tripDetails": {}, "hotels": [{"name": "H", "coordinates": {"latitude": 1, "longitude": 2}}], "itinerary": {"days": []}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParsePlan(tt.raw)
			assert.Nil(t, plan)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.raw, schemaErr.Raw, "raw reply must be kept for diagnostics")
		})
	}
}

func TestParsePlan_StringCoercion(t *testing.T) {
	raw := `{
		"tripDetails": {"location": "X", "budgetTier": "Cheap"},
		"hotels": [{"name": "H", "rating": "4.5", "coordinates": {"latitude": "10.5", "longitude": "-20.25"}}],
		"itinerary": {"days": [{"day": "2", "places": []}]}
	}`

	plan, err := ParsePlan(raw)
	require.NoError(t, err)

	assert.InDelta(t, 4.5, plan.Hotels[0].Rating, 1e-9)
	assert.InDelta(t, 10.5, plan.Hotels[0].Coordinates.Latitude, 1e-9)
	assert.InDelta(t, -20.25, plan.Hotels[0].Coordinates.Longitude, 1e-9)
	assert.Equal(t, 2, plan.Itinerary.Days[0].Index)
}

func TestParsePlan_ActivitiesDefaultEmpty(t *testing.T) {
	raw := `{
		"tripDetails": {},
		"hotels": [{"name": "H", "coordinates": {"latitude": 1, "longitude": 2}}],
		"itinerary": {"days": [{"day": 1, "places": []}]}
	}`

	plan, err := ParsePlan(raw)
	require.NoError(t, err)
	assert.NotNil(t, plan.Itinerary.Days[0].Activities)
	assert.Empty(t, plan.Itinerary.Days[0].Activities)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain json", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  \n```json\n{\"a\":1}\n```\n ", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestCoordinates_Valid(t *testing.T) {
	assert.True(t, Coordinates{Latitude: -90, Longitude: 180}.Valid())
	assert.True(t, Coordinates{Latitude: 0, Longitude: 0}.Valid())
	assert.False(t, Coordinates{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Coordinates{Latitude: 0, Longitude: -180.5}.Valid())
}
