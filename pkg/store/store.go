// Package store persists chart documents for the HTTP API.
//
// This package defines the storage interface for saved charts, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Architecture
//
// A stored chart is the raw document in its canonical JSON encoding plus
// identity and timestamps. Keeping the document as bytes means the store
// never lags behind the document schema, and the render pipeline can
// consume a stored chart directly as an inline source.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage charts:
//
//	ch := &store.Chart{Name: "Quarterly Revenue", Source: source}
//	if err := st.Create(ctx, ch); err != nil {
//	    return err
//	}
//	saved, err := st.Get(ctx, ch.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a chart does not exist.
	ErrNotFound = errors.New("chart not found")

	// ErrExists is returned when creating a chart whose ID is taken.
	ErrExists = errors.New("chart already exists")
)

// Chart is one stored chart document.
type Chart struct {
	// ID is the chart's unique identifier, assigned on create.
	ID string `json:"id"`

	// Name is the display name shown in listings.
	Name string `json:"name"`

	// Source is the chart document in its canonical JSON encoding.
	Source []byte `json:"source"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the interface for chart storage backends.
type Store interface {
	// Get retrieves a chart by ID.
	// Returns ErrNotFound if the chart doesn't exist.
	Get(ctx context.Context, id string) (*Chart, error)

	// List returns all charts ordered by creation time.
	List(ctx context.Context) ([]*Chart, error)

	// Create stores a new chart, assigning an ID and timestamps when
	// unset. Returns ErrExists if the ID is taken.
	Create(ctx context.Context, ch *Chart) error

	// Update replaces a stored chart and bumps its update time.
	// Returns ErrNotFound if the chart doesn't exist.
	Update(ctx context.Context, ch *Chart) error

	// Delete removes a chart.
	// Returns ErrNotFound if the chart doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID generates a chart identifier.
func NewID() string {
	return uuid.NewString()
}

// prepareCreate fills identity and timestamps before insertion.
func prepareCreate(ch *Chart) {
	if ch.ID == "" {
		ch.ID = NewID()
	}
	now := nowUTC()
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = now
	}
	ch.UpdatedAt = now
}

func nowUTC() time.Time { return time.Now().UTC() }
