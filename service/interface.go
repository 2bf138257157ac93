package service

import (
	"errors"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
	"github.com/fulldump/slotdb/slotarray"
)

var (
	ErrorCollectionNotFound      = database.ErrCollectionNotFound
	ErrorCollectionAlreadyExists = database.ErrCollectionAlreadyExists
	ErrorCollectionNameRequired  = errors.New("collection name is required")
)

type Servicer interface {
	CreateCollection(name string) (*collection.Collection, error)
	GetCollection(name string) (*collection.Collection, error)
	GetCollectionHandle(name string) (slotarray.Handle, error)
	ListCollections() map[string]*collection.Collection
	DeleteCollection(name string) error
	Stats() slotarray.Stats
}
