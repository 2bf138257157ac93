package service

import (
	"fmt"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
	"github.com/fulldump/slotdb/slotarray"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateCollection(name string) (*collection.Collection, error) {
	if name == "" {
		return nil, ErrorCollectionNameRequired
	}
	return s.db.CreateCollection(name)
}

func (s *Service) GetCollection(name string) (*collection.Collection, error) {
	return s.db.GetCollection(name)
}

func (s *Service) GetCollectionHandle(name string) (slotarray.Handle, error) {
	h, exists := s.db.CollectionHandle(name)
	if !exists {
		return 0, fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}
	return h, nil
}

func (s *Service) ListCollections() map[string]*collection.Collection {
	result := map[string]*collection.Collection{}
	for _, name := range s.db.ListCollections() {
		col, err := s.db.GetCollection(name)
		if err != nil {
			// dropped in the meantime
			continue
		}
		result[name] = col
	}
	return result
}

func (s *Service) DeleteCollection(name string) error {
	return s.db.DropCollection(name)
}

func (s *Service) Stats() slotarray.Stats {
	return s.db.Stats()
}
