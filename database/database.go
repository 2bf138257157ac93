package database

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotarray"
	"github.com/fulldump/slotdb/slotmap"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrCollectionAlreadyExists = errors.New("collection already exists")
	ErrTooManyCollections      = errors.New("too many collections")
)

type Config struct {
	// MaxCollections bounds the collection registry. Zero means
	// slotarray.MaxCapacity.
	MaxCollections int

	// Rows configures the document table of every new collection.
	Rows slotmap.Options
}

// Database is the registry of collections. Every collection gets a pinned
// slot, so its handle stays valid until the collection is dropped even if
// other collections come and go.
type Database struct {
	Config *Config

	mutex       sync.RWMutex
	status      string
	collections *slotarray.SlotArray[*collection.Collection]
	names       map[string]slotarray.Handle
	exit        chan struct{}
}

func NewDatabase(config *Config) *Database {
	maxCollections := config.MaxCollections
	if maxCollections <= 0 || maxCollections > slotarray.MaxCapacity {
		maxCollections = slotarray.MaxCapacity
	}

	collections, err := slotarray.New[*collection.Collection](slotarray.Options{
		MaxCapacity: maxCollections,
	})
	if err != nil {
		// unreachable, maxCollections is always within range
		panic(err)
	}

	return &Database{
		Config:      config,
		status:      StatusOpening,
		collections: collections,
		names:       map[string]slotarray.Handle{},
		exit:        make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

func (db *Database) CreateCollection(name string) (*collection.Collection, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.names[name]; exists {
		return nil, fmt.Errorf("%w: '%s'", ErrCollectionAlreadyExists, name)
	}

	col := collection.NewCollection(db.Config.Rows)
	h, _, err := db.collections.Alloc(col)
	if errors.Is(err, slotarray.ErrCapacityExhausted) {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyCollections, db.collections.MaxCap())
	}
	if err != nil {
		return nil, err
	}
	db.names[name] = h

	return col, nil
}

func (db *Database) GetCollection(name string) (*collection.Collection, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	h, exists := db.names[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrCollectionNotFound, name)
	}
	return *db.collections.Get(h), nil
}

// CollectionHandle returns the registry handle of a collection.
func (db *Database) CollectionHandle(name string) (slotarray.Handle, bool) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	h, exists := db.names[name]
	return h, exists
}

// ListCollections returns the collection names in alphabetical order.
func (db *Database) ListCollections() []string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	names := slices.AppendSeq([]string{}, maps.Keys(db.names))
	slices.Sort(names)
	return names
}

func (db *Database) DropCollection(name string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	h, exists := db.names[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrCollectionNotFound, name)
	}

	col := *db.collections.Get(h)
	db.collections.Free(h)
	delete(db.names, name)
	col.Clear()

	return nil
}

func (db *Database) Stats() slotarray.Stats {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return db.collections.Stats()
}

// Load gets the database ready to serve. Collections live in memory only, so
// there is nothing to read.
func (db *Database) Load() error {
	log.Println("database ready, max collections:", db.collections.MaxCap())
	db.setStatus(StatusOperating)
	return nil
}

func (db *Database) Start() error {
	if err := db.Load(); err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.status == StatusClosing {
		return nil
	}
	db.status = StatusClosing
	defer close(db.exit)

	for name, h := range db.names {
		log.Printf("Closing '%s'...\n", name)
		(*db.collections.Get(h)).Clear()
	}
	db.collections.Clear()
	clear(db.names)

	return nil
}
