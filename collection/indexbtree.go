package collection

import (
	"cmp"
	"fmt"
	"strings"

	json2 "github.com/go-json-experiment/json"
	"github.com/google/btree"
	"github.com/tidwall/gjson"

	"github.com/fulldump/slotdb/slotmap"
)

// IndexBTree orders documents by one or more fields. Documents with equal
// values are kept in handle order, so the index is not unique unless
// Options.Unique is set.
type IndexBTree struct {
	Btree   *btree.BTreeG[*RowOrdered]
	Options *IndexOptions
	reverse []bool
	fields  []string
}

// RowOrdered is a btree entry. A pivot sorts before every entry with the same
// values and is only used to seek.
type RowOrdered struct {
	Handle slotmap.Handle
	Values []any
	pivot  bool
}

type IndexBTreeTraverse struct {
	Reverse bool           `json:"reverse"`
	From    map[string]any `json:"from"`
	To      map[string]any `json:"to"`
}

func NewIndexBTree(options *IndexOptions) *IndexBTree {
	b := &IndexBTree{
		Options: options,
	}
	for _, field := range options.Fields {
		b.reverse = append(b.reverse, strings.HasPrefix(field, "-"))
		b.fields = append(b.fields, strings.TrimPrefix(field, "-"))
	}
	b.Btree = btree.NewG(32, b.less)
	return b
}

func (b *IndexBTree) less(x, y *RowOrdered) bool {
	if c := b.compareValues(x.Values, y.Values); c != 0 {
		return c < 0
	}
	if x.pivot != y.pivot {
		return x.pivot
	}
	if x.Handle.Index != y.Handle.Index {
		return x.Handle.Index < y.Handle.Index
	}
	return x.Handle.Generation < y.Handle.Generation
}

func (b *IndexBTree) compareValues(x, y []any) int {
	for i := range b.fields {
		c := compareValue(x[i], y[i])
		if c == 0 {
			continue
		}
		if b.reverse[i] {
			return -c
		}
		return c
	}
	return 0
}

// valueRank orders JSON types: null, booleans, numbers, strings, then
// anything else.
func valueRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	}
	return 4
}

func compareValue(x, y any) int {
	if c := cmp.Compare(valueRank(x), valueRank(y)); c != 0 {
		return c
	}
	switch x := x.(type) {
	case bool:
		y := y.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case float64:
		return cmp.Compare(x, y.(float64))
	case string:
		return strings.Compare(x, y.(string))
	}
	return 0
}

// values extracts the indexed fields. ok is false when a field is missing and
// the index is sparse.
func (b *IndexBTree) values(payload []byte) (values []any, ok bool, err error) {
	results := gjson.GetManyBytes(payload, b.fields...)
	for i, result := range results {
		if !result.Exists() {
			if b.Options.Sparse {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("%w: field '%s'", ErrIndexField, b.fields[i])
		}
		values = append(values, result.Value())
	}
	return values, true, nil
}

func (b *IndexBTree) Check(payload []byte) error {
	values, ok, err := b.values(payload)
	if err != nil || !ok || !b.Options.Unique {
		return err
	}

	exists := false
	b.Btree.AscendGreaterOrEqual(&RowOrdered{Values: values, pivot: true}, func(item *RowOrdered) bool {
		exists = b.compareValues(item.Values, values) == 0
		return false
	})
	if exists {
		pairs := []string{}
		for i, field := range b.fields {
			pairs = append(pairs, fmt.Sprint(field, ":", values[i]))
		}
		return fmt.Errorf("%w: key (%s) already exists", ErrIndexConflict, strings.Join(pairs, ","))
	}

	return nil
}

func (b *IndexBTree) Add(h slotmap.Handle, payload []byte) {
	values, ok, _ := b.values(payload)
	if !ok {
		return
	}
	b.Btree.ReplaceOrInsert(&RowOrdered{Handle: h, Values: values})
}

func (b *IndexBTree) Remove(h slotmap.Handle, payload []byte) {
	values, ok, _ := b.values(payload)
	if !ok {
		return
	}
	b.Btree.Delete(&RowOrdered{Handle: h, Values: values})
}

func (b *IndexBTree) pivot(bound map[string]any) *RowOrdered {
	pivot := &RowOrdered{pivot: true}
	for _, field := range b.fields {
		value := bound[field]
		if n, ok := value.(int); ok {
			value = float64(n)
		}
		pivot.Values = append(pivot.Values, value)
	}
	return pivot
}

// Traverse visits the entries in [from, to) in index order, or in reverse
// order when options say so. Missing bounds are open.
func (b *IndexBTree) Traverse(optionsData []byte, f func(h slotmap.Handle) bool) error {
	options := &IndexBTreeTraverse{}
	if err := json2.Unmarshal(optionsData, options); err != nil {
		return fmt.Errorf("traverse options: %w", err)
	}

	iterator := func(item *RowOrdered) bool {
		return f(item.Handle)
	}

	hasFrom := len(options.From) > 0
	hasTo := len(options.To) > 0
	from := b.pivot(options.From)
	to := b.pivot(options.To)

	switch {
	case !hasFrom && !hasTo && options.Reverse:
		b.Btree.Descend(iterator)
	case !hasFrom && !hasTo:
		b.Btree.Ascend(iterator)
	case !hasTo && options.Reverse:
		b.Btree.DescendGreaterThan(from, iterator)
	case !hasTo:
		b.Btree.AscendGreaterOrEqual(from, iterator)
	case !hasFrom && options.Reverse:
		b.Btree.DescendLessOrEqual(to, iterator)
	case !hasFrom:
		b.Btree.AscendLessThan(to, iterator)
	case options.Reverse:
		b.Btree.DescendRange(to, from, iterator)
	default:
		b.Btree.AscendRange(from, to, iterator)
	}

	return nil
}

func (b *IndexBTree) Len() int {
	return b.Btree.Len()
}

func (b *IndexBTree) Reset() {
	b.Btree.Clear(false)
}
