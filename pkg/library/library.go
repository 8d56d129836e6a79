// Package library stores named plate designs.
//
// A [Store] keeps [Entry] records addressed by design name. Two
// backends are provided: [FileStore] writes JSON files under the user
// config directory and backs the CLI, [MongoStore] persists entries in
// MongoDB for shared deployments. Both validate names with
// [errors.ValidateDesignName] before touching the backend, so a stored
// name is always safe as a file basename and as a database key.
package library

import (
	"context"
	"time"

	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// Entry is one stored plate design.
type Entry struct {
	// ID is a stable identifier assigned on first save.
	ID string `json:"id" bson:"_id"`

	// Name addresses the entry within a store. Saving under an
	// existing name replaces that entry.
	Name string `json:"name" bson:"name"`

	// Description is free-form user text.
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Document is the design itself, as it would appear in a plate
	// file.
	Document platefile.Document `json:"document" bson:"document"`

	// Plan carries the generation outcome recorded when the entry was
	// last saved, if the caller provided one.
	Plan *plan.Summary `json:"plan,omitempty" bson:"plan,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is a named design store. Implementations report missing names
// with errors.ErrCodeDesignNotFound and backend failures with
// errors.ErrCodeStore.
type Store interface {
	// Save inserts the entry or replaces the entry with the same name.
	// On replace the original ID and CreatedAt are preserved; the
	// passed entry is updated in place with the final ID and
	// timestamps.
	Save(ctx context.Context, e *Entry) error

	// Get returns the entry with the given name.
	Get(ctx context.Context, name string) (*Entry, error)

	// List returns all entries sorted by name.
	List(ctx context.Context) ([]*Entry, error)

	// Delete removes the entry with the given name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}
