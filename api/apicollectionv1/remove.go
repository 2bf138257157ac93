package apicollectionv1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotmap"
)

func remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return err
	}

	// traversal holds the collection read lock, so removal happens afterwards
	handles := []slotmap.Handle{}
	err = traverse(requestBody, col, func(h slotmap.Handle, payload []byte) bool {
		handles = append(handles, h)
		return true
	})
	if err != nil {
		return err
	}

	for _, h := range handles {
		document, err := col.Remove(h)
		if errors.Is(err, collection.ErrDocumentNotFound) {
			// removed by a concurrent request
			continue
		}
		if err != nil {
			return err
		}
		if err := writeDocument(w, document.Handle, document.Payload); err != nil {
			return err
		}
	}

	return nil
}
