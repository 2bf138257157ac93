package apicollectionv1

import (
	"context"
	"net/http"

	"github.com/fulldump/slotdb/collection"
)

func createIndex(ctx context.Context, w http.ResponseWriter, input *collection.IndexOptions) (*collection.IndexOptions, error) {

	col, err := resolveCollection(ctx, true)
	if err != nil {
		return nil, err
	}

	err = col.Index(input)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return input, nil
}
