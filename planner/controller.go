package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Stage identifies where in the pipeline a generation request currently is.
type Stage string

const (
	StageValidating Stage = "validating"
	StageGenerating Stage = "generating"
	StageParsing    Stage = "parsing"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
)

// Owner identifies who a generated trip belongs to.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GenerationResult is the caller-facing outcome of one pipeline run.
// Persisted is false when the plan was produced but could not be durably
// saved; the plan itself is still complete and usable.
type GenerationResult struct {
	TripID    string    `json:"tripId"`
	Plan      *TripPlan `json:"plan"`
	Persisted bool      `json:"persisted"`
}

// GenerationError wraps a pipeline failure with the stage it happened in.
// The underlying error is always one of the typed errors in errors.go.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("trip generation failed while %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Controller runs the generation pipeline: prompt construction, model call,
// reply parsing, persistence. One Controller serves all requests; everything
// it holds is read-only after construction, and each request builds its own
// session, so no locking is needed across concurrent generations.
type Controller struct {
	prompts  *PromptBuilder
	sessions SessionFactory
	store    RecordStore
	log      *slog.Logger

	backoff time.Duration
	now     func() time.Time
	sleep   func(time.Duration)
}

func NewController(cfg Config, sessions SessionFactory, store RecordStore, log *slog.Logger) *Controller {
	return &Controller{
		prompts:  NewPromptBuilder(cfg.MaxDays),
		sessions: sessions,
		store:    store,
		log:      log,
		backoff:  cfg.RetryBackoff,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// GenerateTrip runs one request through the pipeline.
//
// Model failures are retried once after a fixed backoff. A reply that fails
// schema validation is not retried: the prompt is deterministic, so an
// identical resend tends to reproduce the same malformed reply. Persistence
// failure is retried once and then degrades the result instead of discarding
// the already-generated plan.
func (c *Controller) GenerateTrip(ctx context.Context, req TripRequest, owner Owner) (*GenerationResult, error) {
	requestID := uuid.NewString()
	req = req.Normalize()

	prompt, err := c.prompts.Build(req)
	if err != nil {
		return nil, &GenerationError{Stage: StageValidating, Err: err}
	}

	session := c.sessions.NewSession()
	raw, err := c.sendWithRetry(ctx, session, prompt, requestID)
	if err != nil {
		return nil, &GenerationError{Stage: StageGenerating, Err: err}
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		c.log.Error("model reply failed schema validation",
			"error", err, "requestId", requestID, "location", req.Location)
		return nil, &GenerationError{Stage: StageParsing, Err: err}
	}

	if got := len(plan.Itinerary.Days); got != req.Days {
		c.log.Warn("itinerary day count differs from request",
			"requestId", requestID, "requested", req.Days, "got", got)
	}

	tripID := strconv.FormatInt(c.now().UnixNano(), 10)
	record := TripRecord{
		TripID:     tripID,
		Request:    req,
		Plan:       *plan,
		OwnerName:  owner.Name,
		OwnerEmail: owner.Email,
	}

	persisted := true
	if err := c.putWithRetry(ctx, record, requestID); err != nil {
		c.log.Error("trip record could not be saved",
			"error", err, "requestId", requestID, "tripId", tripID)
		persisted = false
	}

	c.log.Info("trip generated",
		"requestId", requestID, "tripId", tripID,
		"location", req.Location, "days", req.Days, "persisted", persisted)

	return &GenerationResult{TripID: tripID, Plan: plan, Persisted: persisted}, nil
}

func (c *Controller) sendWithRetry(ctx context.Context, session Session, prompt, requestID string) (string, error) {
	raw, err := session.Send(ctx, prompt)
	if err == nil {
		return raw, nil
	}
	if ctx.Err() != nil {
		return "", err
	}
	c.log.Warn("model call failed, retrying once", "error", err, "requestId", requestID)
	c.sleep(c.backoff)
	return session.Send(ctx, prompt)
}

func (c *Controller) putWithRetry(ctx context.Context, record TripRecord, requestID string) error {
	err := c.store.Put(ctx, record)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	c.log.Warn("trip record save failed, retrying once",
		"error", err, "requestId", requestID, "tripId", record.TripID)
	return c.store.Put(ctx, record)
}
