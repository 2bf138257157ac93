package apicollectionv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func dropCollection(ctx context.Context, w http.ResponseWriter) error {

	s := GetServicer(ctx)

	err := s.DeleteCollection(box.GetUrlParameter(ctx, "collectionName"))
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// clearCollection removes every document but keeps the collection, its
// indexes and its defaults.
func clearCollection(ctx context.Context, w http.ResponseWriter) error {

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return err
	}

	col.Clear()

	w.WriteHeader(http.StatusNoContent)
	return nil
}
