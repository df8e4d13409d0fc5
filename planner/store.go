package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// tripsCollection is the PocketBase collection trip records live in.
const tripsCollection = "trips"

// TripRecord is the persisted unit: the originating request, the generated
// plan and the owner it was generated for. Records are written once per
// successful generation; writing under an existing trip id is a full replace.
type TripRecord struct {
	TripID     string      `json:"tripId"`
	Request    TripRequest `json:"request"`
	Plan       TripPlan    `json:"plan"`
	OwnerName  string      `json:"ownerName"`
	OwnerEmail string      `json:"ownerEmail"`
}

// RecordStore persists trip records keyed by trip id.
type RecordStore interface {
	Put(ctx context.Context, record TripRecord) error
	Get(ctx context.Context, tripID string) (*TripRecord, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]TripRecord, error)
}

// BaseStore stores trip records in the application database. A short
// read-through cache sits in front of Get, since a freshly generated trip is
// fetched straight back for rendering.
type BaseStore struct {
	app   core.App
	cache *cache.Cache
}

func NewBaseStore(app core.App) *BaseStore {
	return &BaseStore{
		app:   app,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *BaseStore) Put(ctx context.Context, rec TripRecord) error {
	collection, err := s.app.FindCollectionByNameOrId(tripsCollection)
	if err != nil {
		return &PersistenceError{Op: "put", Err: err}
	}

	record, err := s.app.FindFirstRecordByData(tripsCollection, "trip_id", rec.TripID)
	if err != nil {
		record = core.NewRecord(collection)
	}

	requestJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return &PersistenceError{Op: "put", Err: err}
	}
	planJSON, err := json.Marshal(rec.Plan)
	if err != nil {
		return &PersistenceError{Op: "put", Err: err}
	}

	record.Set("trip_id", rec.TripID)
	record.Set("request", string(requestJSON))
	record.Set("plan", string(planJSON))
	record.Set("owner_name", rec.OwnerName)
	record.Set("owner_email", rec.OwnerEmail)

	if err := s.app.Save(record); err != nil {
		return &PersistenceError{Op: "put", Err: err}
	}

	s.cache.Set(rec.TripID, rec, cache.DefaultExpiration)
	return nil
}

func (s *BaseStore) Get(ctx context.Context, tripID string) (*TripRecord, error) {
	if cached, ok := s.cache.Get(tripID); ok {
		rec := cached.(TripRecord)
		return &rec, nil
	}

	record, err := s.app.FindFirstRecordByData(tripsCollection, "trip_id", tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, &PersistenceError{Op: "get", Err: err}
	}

	rec, err := recordToTrip(record)
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}

	s.cache.Set(tripID, *rec, cache.DefaultExpiration)
	return rec, nil
}

func (s *BaseStore) ListByOwner(ctx context.Context, ownerEmail string) ([]TripRecord, error) {
	records, err := s.app.FindAllRecords(tripsCollection,
		dbx.NewExp("owner_email = {:email}", dbx.Params{"email": ownerEmail}))
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	trips := make([]TripRecord, 0, len(records))
	for _, record := range records {
		rec, err := recordToTrip(record)
		if err != nil {
			return nil, &PersistenceError{Op: "list", Err: err}
		}
		trips = append(trips, *rec)
	}
	return trips, nil
}

func recordToTrip(record *core.Record) (*TripRecord, error) {
	rec := TripRecord{
		TripID:     record.GetString("trip_id"),
		OwnerName:  record.GetString("owner_name"),
		OwnerEmail: record.GetString("owner_email"),
	}
	if err := record.UnmarshalJSONField("request", &rec.Request); err != nil {
		return nil, fmt.Errorf("decode stored request: %w", err)
	}
	if err := record.UnmarshalJSONField("plan", &rec.Plan); err != nil {
		return nil, fmt.Errorf("decode stored plan: %w", err)
	}
	return &rec, nil
}
