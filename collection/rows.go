package collection

import (
	"github.com/tidwall/gjson"

	"github.com/fulldump/slotdb/slotmap"
)

// Rows is a cursor over the documents of a collection. Each call to Next takes
// the read lock on its own, so documents erased between calls may be skipped
// and documents moved by an erase may be visited twice.
type Rows struct {
	col  *Collection
	pos  int
	h    slotmap.Handle
	data []byte

	hasFilter      bool
	filterPath     string
	filterExpected any
}

func (c *Collection) Scan() *Rows {
	return &Rows{
		col: c,
		pos: -1,
	}
}

// Where keeps only the documents whose value at path equals expected, compared
// as gjson decodes it: numbers are float64.
func (r *Rows) Where(path string, expected any) *Rows {
	if n, ok := expected.(int); ok {
		expected = float64(n)
	}
	r.hasFilter = true
	r.filterPath = path
	r.filterExpected = expected
	return r
}

// Next moves to the next matching document and reports whether there is one.
func (r *Rows) Next() bool {
	r.col.mutex.RLock()
	defer r.col.mutex.RUnlock()

	rows := r.col.rows
	for r.pos++; r.pos < rows.Len(); r.pos++ {
		payload := rows.ValueAt(r.pos).Payload
		if r.hasFilter && gjson.GetBytes(payload, r.filterPath).Value() != r.filterExpected {
			continue
		}
		r.h = rows.HandleAt(r.pos)
		r.data = payload
		return true
	}
	return false
}

// Read returns the current document.
func (r *Rows) Read() (slotmap.Handle, []byte) {
	return r.h, r.data
}

// Get extracts a value from the current document.
func (r *Rows) Get(path string) gjson.Result {
	return gjson.GetBytes(r.data, path)
}
