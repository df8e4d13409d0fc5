package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// TripPlan is the validated shape of a generated itinerary.
//
// The model is free with its field names (hotelName vs name, price vs
// priceRange, location vs mapLink), so the nested types decode through
// alias-tolerant UnmarshalJSON implementations and marshal back out with the
// canonical names only.
type TripPlan struct {
	TripDetails TripDetails `json:"tripDetails"`
	Hotels      []Hotel     `json:"hotels"`
	Itinerary   Itinerary   `json:"itinerary"`
}

// TripDetails echoes the request back as the model understood it.
type TripDetails struct {
	Location   string `json:"location"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	Duration   string `json:"duration,omitempty"`
	GroupSize  string `json:"groupSize"`
	BudgetTier string `json:"budgetTier"`
}

func (t *TripDetails) UnmarshalJSON(data []byte) error {
	var aux struct {
		Location    string `json:"location"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Duration    string `json:"duration"`
		GroupSize   string `json:"groupSize"`
		BudgetTier  string `json:"budgetTier"`
		BudgetLevel string `json:"budgetLevel"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Location = aux.Location
	t.StartDate = aux.StartDate
	t.EndDate = aux.EndDate
	t.Duration = aux.Duration
	t.GroupSize = aux.GroupSize
	t.BudgetTier, _ = lo.Coalesce(aux.BudgetTier, aux.BudgetLevel)
	return nil
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var aux struct {
		Latitude  *flexFloat `json:"latitude"`
		Longitude *flexFloat `json:"longitude"`
		Lat       *flexFloat `json:"lat"`
		Lng       *flexFloat `json:"lng"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Latitude == nil {
		aux.Latitude = aux.Lat
	}
	if aux.Longitude == nil {
		aux.Longitude = aux.Lng
	}
	if aux.Latitude == nil || aux.Longitude == nil {
		return fmt.Errorf("coordinates missing latitude or longitude: %s", string(data))
	}
	c.Latitude = float64(*aux.Latitude)
	c.Longitude = float64(*aux.Longitude)
	return nil
}

// Valid reports whether the point is finite and inside WGS84 bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Hotel is one lodging suggestion in the plan.
type Hotel struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Rating      float64     `json:"rating"`
	PriceRange  string      `json:"priceRange"`
	MapLink     string      `json:"mapLink"`
	Coordinates Coordinates `json:"coordinates"`
	ImageURL    string      `json:"imageUrl"`
}

func (h *Hotel) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name        string       `json:"name"`
		HotelName   string       `json:"hotelName"`
		Description string       `json:"description"`
		Address     string       `json:"address"`
		Rating      flexFloat    `json:"rating"`
		PriceRange  string       `json:"priceRange"`
		Price       string       `json:"price"`
		MapLink     string       `json:"mapLink"`
		Location    string       `json:"location"`
		Coordinates *Coordinates `json:"coordinates"`
		ImageURL    string       `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	h.Name, _ = lo.Coalesce(aux.Name, aux.HotelName)
	if aux.Coordinates == nil {
		return fmt.Errorf("hotel %q is missing coordinates", h.Name)
	}
	h.Description = aux.Description
	h.Address = aux.Address
	h.Rating = float64(aux.Rating)
	h.PriceRange, _ = lo.Coalesce(aux.PriceRange, aux.Price)
	h.MapLink, _ = lo.Coalesce(aux.MapLink, aux.Location)
	h.Coordinates = *aux.Coordinates
	h.ImageURL = aux.ImageURL
	return nil
}

// Place is one stop inside an itinerary day.
type Place struct {
	Name        string      `json:"name"`
	Details     string      `json:"details"`
	Pricing     string      `json:"pricing"`
	Timings     string      `json:"timings"`
	ImageURL    string      `json:"imageUrl"`
	MapLink     string      `json:"mapLink"`
	Coordinates Coordinates `json:"coordinates"`
}

func (p *Place) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name        string       `json:"name"`
		Details     string       `json:"details"`
		Description string       `json:"description"`
		Pricing     string       `json:"pricing"`
		Timings     string       `json:"timings"`
		ImageURL    string       `json:"imageUrl"`
		MapLink     string       `json:"mapLink"`
		Location    string       `json:"location"`
		Coordinates *Coordinates `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Name = aux.Name
	if aux.Coordinates == nil {
		return fmt.Errorf("place %q is missing coordinates", p.Name)
	}
	p.Details, _ = lo.Coalesce(aux.Details, aux.Description)
	p.Pricing = aux.Pricing
	p.Timings = aux.Timings
	p.ImageURL = aux.ImageURL
	p.MapLink, _ = lo.Coalesce(aux.MapLink, aux.Location)
	p.Coordinates = *aux.Coordinates
	return nil
}

// Day is one day of the itinerary.
type Day struct {
	Index      int      `json:"day"`
	Theme      string   `json:"theme"`
	Places     []Place  `json:"places"`
	Activities []string `json:"activities"`
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var aux struct {
		Day        *flexFloat `json:"day"`
		Index      *flexFloat `json:"index"`
		Theme      string     `json:"theme"`
		Places     []Place    `json:"places"`
		Activities []string   `json:"activities"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Day == nil {
		aux.Day = aux.Index
	}
	if aux.Day != nil {
		d.Index = int(*aux.Day)
	}
	d.Theme = aux.Theme
	d.Places = aux.Places
	// activities are optional in the schema but never nil once decoded
	d.Activities = aux.Activities
	if d.Activities == nil {
		d.Activities = []string{}
	}
	return nil
}

// Itinerary is the day-by-day part of the plan.
type Itinerary struct {
	Duration string `json:"duration,omitempty"`
	Days     []Day  `json:"days"`
}

// flexFloat decodes a JSON number or a numeric string, since the model
// sometimes quotes ratings and coordinates.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*f = flexFloat(v)
	return nil
}
