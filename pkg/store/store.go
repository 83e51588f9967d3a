// Package store persists blueprint documents by id.
//
// A [Store] holds raw JSON documents; decoding and reconstruction stay in
// [io] so every backend round-trips exactly the bytes it was given.
// Backends:
//
//   - [MemoryStore]: process-local map, for tests and ephemeral servers
//   - [FileStore]: one "<id>.json" file per document in a directory
//   - [RedisStore]: one key per document under a prefix
//   - [MongoStore]: one document per blueprint in a collection
//
// [io]: github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io
package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "blueprint not found")

// Store is a blueprint document store.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the document stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)
	// Put stores data under id, replacing any previous document.
	Put(ctx context.Context, id string, data []byte) error
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// List returns all ids in ascending order.
	List(ctx context.Context) ([]string, error)
	// Close releases the store's resources.
	Close() error
}

// NewID returns a fresh random document id.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that id can be used as a key by every backend: a
// non-empty relative name without path separators.
func ValidateID(id string) error {
	if err := errors.ValidatePath(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid blueprint id %q", id)
	}
	if strings.ContainsAny(id, "/*?[]") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid blueprint id %q", id)
	}
	return nil
}

// Kind names a store backend in configuration.
type Kind string

// Store kinds.
const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindRedis  Kind = "redis"
	KindMongo  Kind = "mongo"
)

// Kinds lists the supported backends.
var Kinds = []Kind{KindMemory, KindFile, KindRedis, KindMongo}

// Options selects and configures a backend for Open.
type Options struct {
	Kind          Kind
	Dir           string
	RedisAddr     string
	MongoURI      string
	MongoDatabase string
}

// Open creates the backend selected by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case KindMemory, "":
		return NewMemoryStore(), nil
	case KindFile:
		return NewFileStore(opts.Dir)
	case KindRedis:
		return NewRedisStore(ctx, opts.RedisAddr, DefaultRedisPrefix)
	case KindMongo:
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store kind %q", opts.Kind)
	}
}
