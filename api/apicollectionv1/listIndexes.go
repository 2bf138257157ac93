package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/collection"
)

func listIndexes(ctx context.Context) ([]*collection.IndexOptions, error) {

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	return col.ListIndexes(), nil
}
