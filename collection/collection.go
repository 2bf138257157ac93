package collection

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	json2 "github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/fulldump/slotdb/slotmap"
)

// Collection is a set of JSON documents addressed by slotmap handles. All
// methods are safe for concurrent use.
type Collection struct {
	mutex    sync.RWMutex
	rows     *slotmap.SlotMap[Row]
	indexes  map[string]*collectionIndex
	defaults map[string]any
	count    int64
}

type Row struct {
	Payload []byte
}

// Document is a copy of a row together with its handle.
type Document struct {
	Handle  slotmap.Handle
	Payload []byte
}

func (d Document) ID() string {
	return d.Handle.String()
}

type Stats struct {
	slotmap.Stats
	Indexes int `json:"indexes"`
}

func NewCollection(options slotmap.Options) *Collection {
	return &Collection{
		rows:    slotmap.New[Row](options),
		indexes: map[string]*collectionIndex{},
	}
}

func (c *Collection) applyDefaults(item map[string]any) {
	c.count++
	for k, v := range c.defaults {
		if item[k] != nil {
			continue
		}
		var value any
		switch v {
		case "uuid()":
			value = uuid.NewString()
		case "unixnano()":
			value = time.Now().UnixNano()
		case "auto()":
			value = c.count
		default:
			value = v
		}
		item[k] = value
	}
}

// Insert stores item after filling in the collection defaults. Indexes are
// checked before anything is stored, so a conflicting document leaves the
// collection untouched.
func (c *Collection) Insert(item map[string]any) (Document, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item == nil {
		item = map[string]any{}
	}
	c.applyDefaults(item)

	payload, err := json2.Marshal(item, json2.Deterministic(true))
	if err != nil {
		return Document{}, fmt.Errorf("json encode payload: %w", err)
	}

	for name, index := range c.indexes {
		if err := index.Check(payload); err != nil {
			return Document{}, fmt.Errorf("index '%s': %w", name, err)
		}
	}

	h, err := c.rows.Insert(Row{Payload: payload})
	if err != nil {
		return Document{}, err
	}

	for _, index := range c.indexes {
		index.Add(h, payload)
	}

	return Document{Handle: h, Payload: payload}, nil
}

func (c *Collection) row(h slotmap.Handle) (*Row, error) {
	row, err := c.rows.At(h)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}
	return row, nil
}

func (c *Collection) Get(h slotmap.Handle) (Document, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	row, err := c.row(h)
	if err != nil {
		return Document{}, err
	}
	return Document{Handle: h, Payload: row.Payload}, nil
}

// Remove erases the document and returns its last payload.
func (c *Collection) Remove(h slotmap.Handle) (Document, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	row, err := c.row(h)
	if err != nil {
		return Document{}, err
	}
	payload := row.Payload

	for _, index := range c.indexes {
		index.Remove(h, payload)
	}
	c.rows.Erase(h)

	return Document{Handle: h, Payload: payload}, nil
}

// Patch applies a JSON merge patch to the document. If the patched document
// breaks an index constraint nothing is changed.
func (c *Collection) Patch(h slotmap.Handle, patch any) (Document, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	row, err := c.row(h)
	if err != nil {
		return Document{}, err
	}

	newPayload, err := MergePatch(row.Payload, patch)
	if err != nil {
		return Document{}, fmt.Errorf("cannot apply patch: %w", err)
	}
	if bytes.Equal(newPayload, row.Payload) {
		return Document{Handle: h, Payload: row.Payload}, nil
	}

	for _, index := range c.indexes {
		index.Remove(h, row.Payload)
	}
	for name, index := range c.indexes {
		if err := index.Check(newPayload); err != nil {
			for _, index := range c.indexes {
				index.Add(h, row.Payload)
			}
			return Document{}, fmt.Errorf("index '%s': %w", name, err)
		}
	}
	for _, index := range c.indexes {
		index.Add(h, newPayload)
	}
	row.Payload = newPayload

	return Document{Handle: h, Payload: newPayload}, nil
}

// Traverse calls f for every document until f returns false. f must not call
// methods that modify the collection.
func (c *Collection) Traverse(f func(h slotmap.Handle, payload []byte) bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for h, row := range c.rows.All() {
		if !f(h, row.Payload) {
			return
		}
	}
}

// TraverseFilter visits the documents matching filter (connor syntax),
// skipping the first skip matches and stopping after limit of them. A
// negative limit means no limit.
func (c *Collection) TraverseFilter(filter map[string]any, skip, limit int64, f func(h slotmap.Handle, payload []byte) bool) error {
	var result error
	c.Traverse(func(h slotmap.Handle, payload []byte) bool {
		if limit == 0 {
			return false
		}
		match, err := Match(filter, payload)
		if err != nil {
			result = err
			return false
		}
		if !match {
			return true
		}
		if skip > 0 {
			skip--
			return true
		}
		limit--
		return f(h, payload)
	})
	return result
}

// TraverseIndex walks the named index. The meaning of options depends on the
// index type.
func (c *Collection) TraverseIndex(name string, options []byte, f func(h slotmap.Handle, payload []byte) bool) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, exists := c.indexes[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}

	return index.Traverse(options, func(h slotmap.Handle) bool {
		return f(h, c.rows.Unchecked(h).Payload)
	})
}

// FindBy looks a value up in a map index.
func (c *Collection) FindBy(name string, value string) (Document, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, exists := c.indexes[name]
	if !exists {
		return Document{}, fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}
	m, ok := index.Index.(*IndexMap)
	if !ok {
		return Document{}, fmt.Errorf("%w: '%s' is not a map index", ErrIndexType, name)
	}

	h, ok := m.Entries[value]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s '%s'", ErrDocumentNotFound, m.Options.Field, value)
	}
	return Document{Handle: h, Payload: c.rows.Unchecked(h).Payload}, nil
}

// Index creates an index and fills it with the current documents. If a
// document does not fit, the index is not created.
func (c *Collection) Index(options *IndexOptions) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.indexes[options.Name]; exists {
		return fmt.Errorf("%w: '%s'", ErrIndexExists, options.Name)
	}

	index, err := newIndex(options)
	if err != nil {
		return err
	}

	for h, row := range c.rows.All() {
		if err := index.Check(row.Payload); err != nil {
			return fmt.Errorf("index row %s: %w, data: %s", h, err, string(row.Payload))
		}
		index.Add(h, row.Payload)
	}

	c.indexes[options.Name] = &collectionIndex{
		Index:   index,
		Options: options,
	}
	return nil
}

func (c *Collection) DropIndex(name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.indexes[name]; !exists {
		return fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}
	delete(c.indexes, name)
	return nil
}

func (c *Collection) GetIndex(name string) (*IndexOptions, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, exists := c.indexes[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}
	return index.Options, nil
}

// ListIndexes returns the index options sorted by name.
func (c *Collection) ListIndexes() []*IndexOptions {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := []*IndexOptions{}
	for _, name := range slices.Sorted(maps.Keys(c.indexes)) {
		result = append(result, c.indexes[name].Options)
	}
	return result
}

// SetDefaults replaces the values filled in by Insert when a field is missing.
// The strings "uuid()", "unixnano()" and "auto()" are generated per document.
func (c *Collection) SetDefaults(defaults map[string]any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.defaults = maps.Clone(defaults)
}

func (c *Collection) Defaults() map[string]any {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return maps.Clone(c.defaults)
}

// Clear removes every document. Indexes are kept, empty.
func (c *Collection) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.rows.Clear()
	for _, index := range c.indexes {
		index.Reset()
	}
}

func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.rows.Len()
}

func (c *Collection) Stats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return Stats{
		Stats:   c.rows.Stats(),
		Indexes: len(c.indexes),
	}
}
