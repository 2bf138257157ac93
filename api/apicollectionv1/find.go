package apicollectionv1

import (
	"context"
	"io"
	"net/http"

	"github.com/fulldump/slotdb/slotmap"
)

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return err
	}

	var writeErr error
	err = traverse(requestBody, col, func(h slotmap.Handle, payload []byte) bool {
		writeErr = writeDocument(w, h, payload)
		return writeErr == nil
	})
	if err != nil {
		return err
	}

	return writeErr
}
