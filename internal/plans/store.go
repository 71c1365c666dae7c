package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"loopwalk.dev/internal/logging"
)

// StorageKey is the single key the plan list lives under.
const StorageKey = "yamanote-route-plans"

var ErrNotFound = errors.New("plan not found")

// PersistenceError wraps a serialization or storage failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s plans: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store saves, lists and deletes plans through a Storage port.
type Store struct {
	storage  Storage
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	// Guards the read-modify-write cycle on StorageKey.
	mu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(storage Storage, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage:  storage,
		logger:   logger.With(slog.String("component", "plan_store")),
		validate: newValidator(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save assigns an id and creation time to draft and appends it to the stored list.
// Any ID or CreatedAt already on draft is replaced.
func (s *Store) Save(ctx context.Context, draft Plan) (Plan, error) {
	plan := draft
	plan.ID = s.newID()
	plan.CreatedAt = s.now()
	plan = plan.inUTC()

	if err := s.validate.Struct(plan); err != nil {
		return Plan{}, fmt.Errorf("invalid plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(ctx)
	if err != nil {
		var pErr *PersistenceError
		if errors.As(err, &pErr) && pErr.Op == "read" {
			return Plan{}, err
		}
		logging.LogError(s.logger, "discarding unreadable stored plans", err)
		stored = nil
	}

	stored = append(stored, plan)
	if err := s.write(ctx, stored); err != nil {
		return Plan{}, err
	}

	logging.LogOperation(s.logger, "plan_saved",
		slog.String("plan_id", plan.ID),
		slog.String("from", plan.FromStation),
		slog.String("to", plan.ToStation))

	return plan, nil
}

// List returns every stored plan in save order. Unreadable or invalid data is
// logged and yields an empty list.
func (s *Store) List(ctx context.Context) []Plan {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(ctx)
	if err != nil {
		logging.LogError(s.logger, "failed to load stored plans", err)
		return []Plan{}
	}
	return stored
}

// Get returns the plan with the given id.
func (s *Store) Get(ctx context.Context, id string) (Plan, error) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrNotFound
}

// DeleteOne removes the plan with the given id. It returns ErrNotFound when no
// stored plan has that id. Unreadable stored data holds no plans, as in List.
func (s *Store) DeleteOne(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(ctx)
	if err != nil {
		logging.LogError(s.logger, "failed to load stored plans", err)
		var pErr *PersistenceError
		if errors.As(err, &pErr) && pErr.Op == "read" {
			return err
		}
		return ErrNotFound
	}

	kept := make([]Plan, 0, len(stored))
	for _, p := range stored {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(stored) {
		return ErrNotFound
	}

	if err := s.write(ctx, kept); err != nil {
		return err
	}
	logging.LogOperation(s.logger, "plan_deleted", slog.String("plan_id", id))
	return nil
}

// DeleteAll removes the whole plan list.
func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.RemoveItem(ctx, StorageKey); err != nil {
		return &PersistenceError{Op: "remove", Err: err}
	}
	logging.LogOperation(s.logger, "plans_cleared")
	return nil
}

func (s *Store) load(ctx context.Context) ([]Plan, error) {
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	if !ok || raw == "" {
		return []Plan{}, nil
	}

	var stored []Plan
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, &PersistenceError{Op: "decode", Err: err}
	}
	if stored == nil {
		return nil, &PersistenceError{Op: "decode", Err: errors.New("stored value is not a list")}
	}
	for i := range stored {
		if err := s.validate.Struct(stored[i]); err != nil {
			return nil, &PersistenceError{Op: "validate", Err: err}
		}
	}
	return stored, nil
}

func (s *Store) write(ctx context.Context, stored []Plan) error {
	b, err := json.Marshal(stored)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := s.storage.SetItem(ctx, StorageKey, string(b)); err != nil {
		return &PersistenceError{Op: "store", Err: err}
	}
	return nil
}
