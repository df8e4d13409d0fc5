package main

import (
	"log"

	"backend/planner"
	"backend/routes"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func main() {
	app := pocketbase.New()

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := ensureTripsCollection(app); err != nil {
			return err
		}

		cfg := planner.LoadConfig()
		store := planner.NewBaseStore(app)
		controller := planner.NewController(cfg, newSessionFactory(cfg), store, app.Logger())
		handlers := &routes.Handlers{Controller: controller, Store: store}

		se.Router.POST("/api/trips/generate", handlers.GenerateTrip)
		se.Router.GET("/api/trips", handlers.ListTrips)
		se.Router.GET("/api/trips/{tripId}", handlers.GetTrip)
		se.Router.GET("/api/trips/{tripId}/calendar", handlers.TripCalendar)

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func newSessionFactory(cfg planner.Config) planner.SessionFactory {
	if cfg.Provider == planner.ProviderOpenAI {
		return planner.NewOpenAIFactory(cfg)
	}
	return planner.NewGeminiFactory(cfg)
}

// ensureTripsCollection creates the trips collection on first start.
func ensureTripsCollection(app core.App) error {
	if _, err := app.FindCollectionByNameOrId("trips"); err == nil {
		return nil
	}

	collection := core.NewBaseCollection("trips")
	collection.Fields.Add(
		&core.TextField{Name: "trip_id", Required: true},
		&core.JSONField{Name: "request", MaxSize: 1 << 20},
		&core.JSONField{Name: "plan", MaxSize: 1 << 22},
		&core.TextField{Name: "owner_name"},
		&core.TextField{Name: "owner_email"},
	)
	collection.AddIndex("idx_trips_trip_id", true, "trip_id", "")
	collection.AddIndex("idx_trips_owner_email", false, "owner_email", "")

	return app.Save(collection)
}
