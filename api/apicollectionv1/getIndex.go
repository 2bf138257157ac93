package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/collection"
)

type getIndexInput struct {
	Name string `json:"name"`
}

func getIndex(ctx context.Context, input *getIndexInput) (*collection.IndexOptions, error) {

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	return col.GetIndex(input.Name)
}
