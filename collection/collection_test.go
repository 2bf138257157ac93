package collection

import (
	"errors"
	"strconv"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/slotdb/slotmap"
)

type JSON = map[string]any

func newTestCollection() *Collection {
	return NewCollection(slotmap.Options{})
}

func payloads(c *Collection) []string {
	result := []string{}
	c.Traverse(func(h slotmap.Handle, payload []byte) bool {
		result = append(result, string(payload))
		return true
	})
	return result
}

func TestCollection(t *testing.T) {

	biff.Alternative("Collection", func(a *biff.A) {

		c := newTestCollection()

		a.Alternative("Insert", func(a *biff.A) {
			doc, err := c.Insert(JSON{"hello": "world"})
			biff.AssertNil(err)
			biff.AssertEqual(doc.ID(), "0-0")
			biff.AssertEqual(string(doc.Payload), `{"hello":"world"}`)
			biff.AssertEqual(c.Len(), 1)

			a.Alternative("Get", func(a *biff.A) {
				found, err := c.Get(doc.Handle)
				biff.AssertNil(err)
				biff.AssertEqual(found, doc)
			})

			a.Alternative("Remove", func(a *biff.A) {
				removed, err := c.Remove(doc.Handle)
				biff.AssertNil(err)
				biff.AssertEqual(string(removed.Payload), `{"hello":"world"}`)
				biff.AssertEqual(c.Len(), 0)

				_, err = c.Get(doc.Handle)
				biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))
				biff.AssertTrue(errors.Is(err, slotmap.ErrStaleHandle))

				_, err = c.Remove(doc.Handle)
				biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))

				a.Alternative("Handle is not reused", func(a *biff.A) {
					next, _ := c.Insert(JSON{"hello": "again"})
					biff.AssertTrue(next.Handle != doc.Handle)
					_, err := c.Get(doc.Handle)
					biff.AssertNotNil(err)
				})
			})

			a.Alternative("Patch", func(a *biff.A) {
				patched, err := c.Patch(doc.Handle, JSON{"hello": "patched", "n": 1})
				biff.AssertNil(err)
				biff.AssertEqual(string(patched.Payload), `{"hello":"patched","n":1}`)
				biff.AssertEqual(patched.Handle, doc.Handle)

				found, _ := c.Get(doc.Handle)
				biff.AssertEqual(string(found.Payload), `{"hello":"patched","n":1}`)
			})

			a.Alternative("Patch not an object", func(a *biff.A) {
				_, err := c.Patch(doc.Handle, "nope")
				biff.AssertTrue(errors.Is(err, ErrPatchNotObject))
			})

			a.Alternative("Clear", func(a *biff.A) {
				c.Clear()
				biff.AssertEqual(c.Len(), 0)
				_, err := c.Get(doc.Handle)
				biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))
			})
		})

		a.Alternative("Defaults", func(a *biff.A) {
			c.SetDefaults(JSON{
				"id":      "uuid()",
				"n":       "auto()",
				"ts":      "unixnano()",
				"country": "es",
			})

			doc, err := c.Insert(JSON{"country": "fr"})
			biff.AssertNil(err)

			rows := c.Scan()
			biff.AssertTrue(rows.Next())
			biff.AssertEqual(len(rows.Get("id").String()), 36)
			biff.AssertEqual(rows.Get("n").Int(), int64(1))
			biff.AssertTrue(rows.Get("ts").Int() > 0)
			biff.AssertEqual(rows.Get("country").String(), "fr")

			h, _ := rows.Read()
			biff.AssertEqual(h, doc.Handle)

			second, _ := c.Insert(JSON{})
			biff.AssertTrue(second.Handle != doc.Handle)
			biff.AssertEqual(c.Defaults()["country"], "es")
		})

		a.Alternative("TraverseFilter", func(a *biff.A) {
			for i := 0; i < 10; i++ {
				c.Insert(JSON{"i": i, "even": i%2 == 0})
			}

			found := []string{}
			err := c.TraverseFilter(JSON{"even": true}, 1, 2, func(h slotmap.Handle, payload []byte) bool {
				found = append(found, string(payload))
				return true
			})
			biff.AssertNil(err)
			biff.AssertEqual(found, []string{`{"even":true,"i":2}`, `{"even":true,"i":4}`})

			all := 0
			c.TraverseFilter(nil, 0, -1, func(h slotmap.Handle, payload []byte) bool {
				all++
				return true
			})
			biff.AssertEqual(all, 10)
		})

		a.Alternative("Scan Where", func(a *biff.A) {
			for i := 0; i < 6; i++ {
				c.Insert(JSON{"i": i, "group": strconv.Itoa(i % 3)})
			}

			rows := c.Scan().Where("group", "1")
			found := []int64{}
			for rows.Next() {
				found = append(found, rows.Get("i").Int())
			}
			biff.AssertEqual(found, []int64{1, 4})

			rows = c.Scan().Where("i", 5)
			biff.AssertTrue(rows.Next())
			biff.AssertFalse(rows.Next())
		})

		a.Alternative("Stats", func(a *biff.A) {
			h, _ := c.Insert(JSON{"a": "1"})
			c.Insert(JSON{"a": "2"})
			c.Remove(h.Handle)
			c.Index(&IndexOptions{Name: "by-a", Type: IndexTypeMap, Field: "a", Sparse: true})

			stats := c.Stats()
			biff.AssertEqual(stats.Len, 1)
			biff.AssertEqual(stats.Slots, slotmap.DefaultInitialSlots)
			biff.AssertEqual(stats.Indexes, 1)
		})
	})
}

func TestCollection_UniqueIndex(t *testing.T) {

	biff.Alternative("Unique index", func(a *biff.A) {

		c := newTestCollection()
		biff.AssertNil(c.Index(&IndexOptions{Name: "by-id", Type: IndexTypeMap, Field: "id"}))

		first, err := c.Insert(JSON{"id": "1", "name": "Alfonso"})
		biff.AssertNil(err)
		second, _ := c.Insert(JSON{"id": "2", "name": "Gerardo"})

		a.Alternative("Conflict leaves the collection untouched", func(a *biff.A) {
			before := c.Stats()
			_, err := c.Insert(JSON{"id": "1"})
			biff.AssertTrue(errors.Is(err, ErrIndexConflict))
			biff.AssertEqual(c.Stats(), before)
		})

		a.Alternative("Missing field", func(a *biff.A) {
			_, err := c.Insert(JSON{"name": "Nobody"})
			biff.AssertTrue(errors.Is(err, ErrIndexField))
		})

		a.Alternative("FindBy", func(a *biff.A) {
			doc, err := c.FindBy("by-id", "2")
			biff.AssertNil(err)
			biff.AssertEqual(doc, second)

			_, err = c.FindBy("by-id", "3")
			biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))

			_, err = c.FindBy("by-name", "3")
			biff.AssertTrue(errors.Is(err, ErrIndexNotFound))
		})

		a.Alternative("Remove frees the value", func(a *biff.A) {
			c.Remove(first.Handle)
			_, err := c.Insert(JSON{"id": "1"})
			biff.AssertNil(err)
		})

		a.Alternative("Patch conflict is rolled back", func(a *biff.A) {
			_, err := c.Patch(second.Handle, JSON{"id": "1"})
			biff.AssertTrue(errors.Is(err, ErrIndexConflict))

			doc, err := c.FindBy("by-id", "2")
			biff.AssertNil(err)
			biff.AssertEqual(doc, second)
		})

		a.Alternative("Patch moves the index entry", func(a *biff.A) {
			_, err := c.Patch(second.Handle, JSON{"id": "3"})
			biff.AssertNil(err)

			doc, err := c.FindBy("by-id", "3")
			biff.AssertNil(err)
			biff.AssertEqual(doc.Handle, second.Handle)

			_, err = c.FindBy("by-id", "2")
			biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))
		})

		a.Alternative("Index over existing conflict", func(a *biff.A) {
			c.Insert(JSON{"id": "4", "name": "Alfonso"})
			err := c.Index(&IndexOptions{Name: "by-name", Type: IndexTypeMap, Field: "name"})
			biff.AssertTrue(errors.Is(err, ErrIndexConflict))
			biff.AssertEqual(len(c.ListIndexes()), 1)
		})

		a.Alternative("Index twice", func(a *biff.A) {
			err := c.Index(&IndexOptions{Name: "by-id", Type: IndexTypeMap, Field: "id"})
			biff.AssertTrue(errors.Is(err, ErrIndexExists))
		})

		a.Alternative("Drop index", func(a *biff.A) {
			biff.AssertNil(c.DropIndex("by-id"))
			_, err := c.Insert(JSON{"id": "1"})
			biff.AssertNil(err)
			biff.AssertTrue(errors.Is(c.DropIndex("by-id"), ErrIndexNotFound))
		})

		a.Alternative("Clear empties the index", func(a *biff.A) {
			c.Clear()
			_, err := c.FindBy("by-id", "1")
			biff.AssertTrue(errors.Is(err, ErrDocumentNotFound))
			_, err = c.Insert(JSON{"id": "1"})
			biff.AssertNil(err)
		})
	})
}

func TestCollection_TraverseIndex(t *testing.T) {
	c := newTestCollection()
	c.Index(&IndexOptions{Name: "by-age", Type: IndexTypeBTree, Fields: []string{"age"}})

	for _, age := range []int{30, 10, 20} {
		c.Insert(JSON{"age": age})
	}

	found := []string{}
	err := c.TraverseIndex("by-age", []byte(`{"reverse":true}`), func(h slotmap.Handle, payload []byte) bool {
		found = append(found, string(payload))
		return true
	})
	biff.AssertNil(err)
	biff.AssertEqual(found, []string{`{"age":30}`, `{"age":20}`, `{"age":10}`})

	err = c.TraverseIndex("missing", nil, nil)
	biff.AssertTrue(errors.Is(err, ErrIndexNotFound))
}
