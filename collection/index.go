package collection

import (
	"errors"
	"fmt"

	"github.com/fulldump/slotdb/slotmap"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrIndexNotFound    = errors.New("index not found")
	ErrIndexExists      = errors.New("index already exists")
	ErrIndexConflict    = errors.New("index conflict")
	ErrIndexField       = errors.New("indexed field is mandatory")
	ErrIndexType        = errors.New("index type not supported")
	ErrIndexOptions     = errors.New("invalid index options")
)

const (
	IndexTypeMap   = "map"
	IndexTypeBTree = "btree"
)

// Index maps document fields to handles. Indexes are protected by the
// collection mutex and must not be used concurrently on their own.
type Index interface {
	// Check reports whether payload could be added without breaking the index
	// constraints. It does not modify the index.
	Check(payload []byte) error
	Add(h slotmap.Handle, payload []byte)
	Remove(h slotmap.Handle, payload []byte)
	Traverse(options []byte, f func(h slotmap.Handle) bool) error
	Len() int
	Reset()
}

// IndexOptions describe an index. Field is used by map indexes and Fields by
// btree indexes, where a "-" prefix reverses the order of that field.
type IndexOptions struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Sparse bool     `json:"sparse"`
	Unique bool     `json:"unique"`
}

func newIndex(options *IndexOptions) (Index, error) {
	if options.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrIndexOptions)
	}
	switch options.Type {
	case IndexTypeMap, "":
		if options.Field == "" {
			return nil, fmt.Errorf("%w: map index '%s' needs a field", ErrIndexOptions, options.Name)
		}
		options.Type = IndexTypeMap
		return NewIndexMap(options), nil
	case IndexTypeBTree:
		if len(options.Fields) == 0 {
			return nil, fmt.Errorf("%w: btree index '%s' needs fields", ErrIndexOptions, options.Name)
		}
		return NewIndexBTree(options), nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrIndexType, options.Type)
}

type collectionIndex struct {
	Index
	Options *IndexOptions
}
