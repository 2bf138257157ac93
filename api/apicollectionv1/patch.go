package apicollectionv1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotmap"
)

type patchInput struct {
	Patch any
}

func patch(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	input := &patchInput{}
	if err := decodeTraverseInput(requestBody, input); err != nil {
		return err
	}
	if input.Patch == nil {
		return badRequest(fmt.Errorf("patch is required"))
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return err
	}

	handles := []slotmap.Handle{}
	err = traverse(requestBody, col, func(h slotmap.Handle, payload []byte) bool {
		handles = append(handles, h)
		return true
	})
	if err != nil {
		return err
	}

	for _, h := range handles {
		document, err := col.Patch(h, input.Patch)
		if errors.Is(err, collection.ErrDocumentNotFound) {
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
