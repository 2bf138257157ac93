package apicollectionv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/box"
	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotmap"
)

type documentResponse struct {
	ID       string          `json:"id"`
	Document json.RawMessage `json:"document"`
}

func newDocumentResponse(document collection.Document) *documentResponse {
	return &documentResponse{
		ID:       document.ID(),
		Document: json.RawMessage(document.Payload),
	}
}

// documentHandle parses the documentId url parameter, formatted as
// "<index>-<generation>".
func documentHandle(ctx context.Context) (slotmap.Handle, error) {
	id := strings.TrimSpace(box.GetUrlParameter(ctx, "documentId"))
	h, err := slotmap.ParseHandle(id)
	if err != nil {
		return slotmap.Handle{}, badRequest(err)
	}
	return h, nil
}

func getDocument(ctx context.Context) (*documentResponse, error) {

	h, err := documentHandle(ctx)
	if err != nil {
		return nil, err
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	document, err := col.Get(h)
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(document), nil
}

func deleteDocument(ctx context.Context) (*documentResponse, error) {

	h, err := documentHandle(ctx)
	if err != nil {
		return nil, err
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	document, err := col.Remove(h)
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(document), nil
}

// patchDocument applies the body as a JSON merge patch.
func patchDocument(ctx context.Context, r *http.Request) (*documentResponse, error) {

	h, err := documentHandle(ctx)
	if err != nil {
		return nil, err
	}

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	var diff any
	if err := json2.Unmarshal(requestBody, &diff); err != nil {
		return nil, badRequest(err)
	}

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	document, err := col.Patch(h, diff)
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(document), nil
}
