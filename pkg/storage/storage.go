// Package storage provides the record sources recordcast sends from.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/pebble"

	"github.com/ssargent/recordcast/pkg/codec"
)

// Errors
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidData    = errors.New("record data is not valid utf-8")
	ErrUnknownDriver  = errors.New("unknown storage driver")
)

// Loader supplies the ordered set of records to transmit
type Loader interface {
	// Load returns every record, ordered by ID
	Load(ctx context.Context) ([]codec.Record, error)

	// Close releases the underlying store
	Close() error
}

// Options selects and locates a Loader
type Options struct {
	Driver  string // "pebble" or "postgres"
	DataDir string // pebble directory
	DSN     string // postgres connection string
}

// Open returns the Loader described by opts
func Open(opts Options) (Loader, error) {
	switch opts.Driver {
	case "", DriverPebble:
		store, err := NewRecordStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		loader, err := OpenSQL(opts.DSN)
		if err != nil {
			return nil, err
		}
		return loader, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// Supported drivers
const (
	DriverPebble   = "pebble"
	DriverPostgres = "postgres"
)

var keyPrefix = []byte("rec/")

// recordKey orders records by ID under keyPrefix
func recordKey(id uint32) []byte {
	key := make([]byte, len(keyPrefix)+4)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint32(key[len(keyPrefix):], id)
	return key
}

// keyUpperBound is the first key after every record key
func keyUpperBound() []byte {
	upper := append([]byte(nil), keyPrefix...)
	upper[len(upper)-1]++
	return upper
}

// RecordStore keeps records in a pebble database
type RecordStore struct {
	db *pebble.DB
}

// NewRecordStore opens (or creates) a record store at path
func NewRecordStore(path string) (*RecordStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &RecordStore{db: db}, nil
}

// Put stores r, replacing any record with the same ID
func (s *RecordStore) Put(r codec.Record) error {
	if !utf8.ValidString(r.Data) {
		return ErrInvalidData
	}
	return s.db.Set(recordKey(r.ID), []byte(r.Data), pebble.Sync)
}

// PutAll stores records in a single batch
func (s *RecordStore) PutAll(records []codec.Record) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for _, r := range records {
		if !utf8.ValidString(r.Data) {
			return fmt.Errorf("record %d: %w", r.ID, ErrInvalidData)
		}
		if err := batch.Set(recordKey(r.ID), []byte(r.Data), nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// Get returns the record with the given ID
func (s *RecordStore) Get(id uint32) (codec.Record, error) {
	data, closer, err := s.db.Get(recordKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return codec.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return codec.Record{}, err
	}
	defer closer.Close()

	return codec.Record{ID: id, Data: string(data)}, nil
}

// Delete removes the record with the given ID. Deleting a missing record is not an error.
func (s *RecordStore) Delete(id uint32) error {
	return s.db.Delete(recordKey(id), pebble.Sync)
}

// Load returns all records ordered by ID
func (s *RecordStore) Load(ctx context.Context) ([]codec.Record, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: keyUpperBound(),
	})
	if err != nil {
		return nil, err
	}

	var records []codec.Record
	for valid := iter.First(); valid; valid = iter.Next() {
		if err := ctx.Err(); err != nil {
			_ = iter.Close()
			return nil, err
		}
		key := iter.Key()
		if len(key) != len(keyPrefix)+4 {
			continue
		}
		value, err := iter.ValueAndErr()
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		records = append(records, codec.Record{
			ID:   binary.BigEndian.Uint32(key[len(keyPrefix):]),
			Data: string(value),
		})
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of stored records
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Close closes the underlying database
func (s *RecordStore) Close() error {
	return s.db.Close()
}
