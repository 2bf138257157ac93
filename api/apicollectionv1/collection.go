package apicollectionv1

import (
	"context"
	"errors"
	"io"

	"github.com/fulldump/box"
	"github.com/tidwall/sjson"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/service"
	"github.com/fulldump/slotdb/slotmap"
)

type CollectionResponse struct {
	Name     string         `json:"name"`
	Handle   string         `json:"handle"`
	Total    int            `json:"total"`
	Indexes  int            `json:"indexes"`
	Defaults map[string]any `json:"defaults,omitempty"`
}

func newCollectionResponse(s service.Servicer, name string, col *collection.Collection) (*CollectionResponse, error) {
	h, err := s.GetCollectionHandle(name)
	if err != nil {
		return nil, err
	}

	stats := col.Stats()
	return &CollectionResponse{
		Name:     name,
		Handle:   h.String(),
		Total:    stats.Len,
		Indexes:  stats.Indexes,
		Defaults: col.Defaults(),
	}, nil
}

func newCollectionDefaults() map[string]any {
	return map[string]any{
		"id": "uuid()",
	}
}

// resolveCollection finds the collection named in the url. With create, a
// missing collection is created with the default defaults.
func resolveCollection(ctx context.Context, create bool) (*collection.Collection, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "collectionName")

	col, err := s.GetCollection(name)
	if !create || !errors.Is(err, service.ErrorCollectionNotFound) {
		return col, err
	}

	col, err = s.CreateCollection(name)
	if errors.Is(err, service.ErrorCollectionAlreadyExists) {
		// created by a concurrent request
		return s.GetCollection(name)
	}
	if err != nil {
		return nil, err
	}
	col.SetDefaults(newCollectionDefaults())

	return col, nil
}

const handleField = "_handle"

// writeDocument writes payload as one NDJSON line, with its handle in the
// _handle field.
func writeDocument(w io.Writer, h slotmap.Handle, payload []byte) error {
	line, err := sjson.SetBytes(payload, handleField, h.String())
	if err != nil {
		return err
	}
	_, err = w.Write(append(line, '\n'))
	return err
}
