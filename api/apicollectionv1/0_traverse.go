package apicollectionv1

import (
	"bytes"
	"fmt"
	"strings"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotmap"
	"github.com/fulldump/slotdb/utils"
)

// traverseInput selects documents. Without mode, an index picks unique or
// btree after its type and no index means fullscan.
type traverseInput struct {
	Mode    string
	Index   string
	Value   string
	From    map[string]any
	To      map[string]any
	Reverse bool
	Filter  map[string]any
	Skip    int64
	Limit   int64
}

type traverser func(col *collection.Collection, params *traverseInput, f func(h slotmap.Handle, payload []byte) bool) error

var traverseModes = map[string]traverser{
	"fullscan": traverseFullscan,
	"unique":   traverseUnique,
	"btree":    traverseBTree,
}

func decodeTraverseInput(input []byte, params any) error {
	if len(bytes.TrimSpace(input)) == 0 {
		return nil
	}
	err := json2.Unmarshal(input, params, json2.MatchCaseInsensitiveNames(true))
	if err != nil {
		return badRequest(err)
	}
	return nil
}

func traverse(input []byte, col *collection.Collection, f func(h slotmap.Handle, payload []byte) bool) error {

	params := &traverseInput{
		Limit: 1,
	}
	if err := decodeTraverseInput(input, params); err != nil {
		return err
	}

	mode := params.Mode
	if mode == "" {
		mode = "fullscan"
		if params.Index != "" {
			options, err := col.GetIndex(params.Index)
			if err != nil {
				return fmt.Errorf("%w, available indexes [%s]", err, strings.Join(indexNames(col), "|"))
			}
			mode = "unique"
			if options.Type == collection.IndexTypeBTree {
				mode = "btree"
			}
		}
	}

	t, exists := traverseModes[mode]
	if !exists {
		return badRequest(fmt.Errorf("bad mode '%s', must be [%s]", mode, strings.Join(utils.GetKeys(traverseModes), "|")))
	}

	return t(col, params, f)
}

func indexNames(col *collection.Collection) []string {
	names := []string{}
	for _, options := range col.ListIndexes() {
		names = append(names, options.Name)
	}
	return names
}

func traverseFullscan(col *collection.Collection, params *traverseInput, f func(h slotmap.Handle, payload []byte) bool) error {
	return col.TraverseFilter(params.Filter, params.Skip, params.Limit, f)
}

func traverseUnique(col *collection.Collection, params *traverseInput, f func(h slotmap.Handle, payload []byte) bool) error {

	options, err := json2.Marshal(collection.IndexMapTraverse{
		Value: params.Value,
	})
	if err != nil {
		return fmt.Errorf("marshal traverse options: %w", err)
	}

	p := newPager(params)
	err = col.TraverseIndex(params.Index, options, p.wrap(f))
	if err != nil {
		return err
	}
	return p.err
}

func traverseBTree(col *collection.Collection, params *traverseInput, f func(h slotmap.Handle, payload []byte) bool) error {

	options, err := json2.Marshal(collection.IndexBTreeTraverse{
		Reverse: params.Reverse,
		From:    params.From,
		To:      params.To,
	})
	if err != nil {
		return fmt.Errorf("marshal traverse options: %w", err)
	}

	p := newPager(params)
	err = col.TraverseIndex(params.Index, options, p.wrap(f))
	if err != nil {
		return err
	}
	return p.err
}

// pager applies filter, skip and limit on top of an index traversal.
type pager struct {
	filter map[string]any
	skip   int64
	limit  int64
	err    error
}

func newPager(params *traverseInput) *pager {
	return &pager{
		filter: params.Filter,
		skip:   params.Skip,
		limit:  params.Limit,
	}
}

func (p *pager) wrap(f func(h slotmap.Handle, payload []byte) bool) func(h slotmap.Handle, payload []byte) bool {
	return func(h slotmap.Handle, payload []byte) bool {
		if p.limit == 0 {
			return false
		}
		match, err := collection.Match(p.filter, payload)
		if err != nil {
			p.err = err
			return false
		}
		if !match {
			return true
		}
		if p.skip > 0 {
			p.skip--
			return true
		}
		p.limit--
		return f(h, payload)
	}
}
