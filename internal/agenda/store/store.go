package store

import (
	"context"
	"errors"

	"github.com/teyroberto/agenda/internal/agenda/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and make the
// transaction boundary explicit at call sites.
type Store interface {
	Users() Users
	Contacts() Contacts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. duplicate check followed by insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by exact email match. Used during
	// login and when resolving a token subject.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email surfaces as ErrAlreadyExists via the unique index.
	CreateUser(ctx context.Context, u domain.User) error
}

type Contacts interface {
	// ListContactsByOwner returns every contact owned by ownerID, ordered
	// by creation time then id for stable output.
	ListContactsByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)

	// GetContactByName looks up a contact by its normalized name, scoped
	// to ownerID. The caller passes an already-normalized name.
	GetContactByName(ctx context.Context, ownerID, normalizedName string) (domain.Contact, error)

	// CreateContact inserts a new contact. A duplicate
	// (owner_id, normalized name) pair surfaces as ErrAlreadyExists via
	// the composite unique index.
	CreateContact(ctx context.Context, c domain.Contact) error

	// UpdateContact persists name/phone/email for the contact id and bumps
	// updated_at. The same unique index guards renames.
	UpdateContact(ctx context.Context, c domain.Contact) error

	// DeleteContact removes the contact permanently. No soft delete.
	DeleteContact(ctx context.Context, id string) error
}
