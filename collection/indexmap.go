package collection

import (
	"fmt"

	json2 "github.com/go-json-experiment/json"
	"github.com/tidwall/gjson"

	"github.com/fulldump/slotdb/slotmap"
)

// IndexMap is a unique index from the string value of one field to the
// document holding it. A field holding an array of strings indexes every
// element.
type IndexMap struct {
	Entries map[string]slotmap.Handle
	Options *IndexOptions
}

func NewIndexMap(options *IndexOptions) *IndexMap {
	return &IndexMap{
		Entries: map[string]slotmap.Handle{},
		Options: options,
	}
}

// keys returns the values to index. A nil slice with a nil error means the
// document is not indexed.
func (i *IndexMap) keys(payload []byte) ([]string, error) {
	field := i.Options.Field

	value := gjson.GetBytes(payload, field)
	if !value.Exists() {
		if i.Options.Sparse {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: field '%s'", ErrIndexField, field)
	}

	switch {
	case value.Type == gjson.String:
		return []string{value.Str}, nil
	case value.IsArray():
		keys := []string{}
		for _, item := range value.Array() {
			if item.Type != gjson.String {
				return nil, fmt.Errorf("%w: field '%s' must hold strings", ErrIndexType, field)
			}
			keys = append(keys, item.Str)
		}
		return keys, nil
	}

	return nil, fmt.Errorf("%w: field '%s' must be a string or an array of strings", ErrIndexType, field)
}

func (i *IndexMap) Check(payload []byte) error {
	keys, err := i.keys(payload)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if _, exists := i.Entries[key]; exists {
			return fmt.Errorf("%w: field '%s' with value '%s'", ErrIndexConflict, i.Options.Field, key)
		}
	}
	return nil
}

func (i *IndexMap) Add(h slotmap.Handle, payload []byte) {
	keys, _ := i.keys(payload)
	for _, key := range keys {
		i.Entries[key] = h
	}
}

func (i *IndexMap) Remove(h slotmap.Handle, payload []byte) {
	keys, _ := i.keys(payload)
	for _, key := range keys {
		if i.Entries[key] == h {
			delete(i.Entries, key)
		}
	}
}

type IndexMapTraverse struct {
	Value string `json:"value"`
}

func (i *IndexMap) Traverse(optionsData []byte, f func(h slotmap.Handle) bool) error {
	options := &IndexMapTraverse{}
	if err := json2.Unmarshal(optionsData, options); err != nil {
		return fmt.Errorf("traverse options: %w", err)
	}

	h, ok := i.Entries[options.Value]
	if !ok {
		return nil
	}

	f(h)
	return nil
}

func (i *IndexMap) Len() int {
	return len(i.Entries)
}

func (i *IndexMap) Reset() {
	clear(i.Entries)
}
