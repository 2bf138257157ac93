package apicollectionv1

import (
	"context"

	"github.com/fulldump/box"
)

func getCollection(ctx context.Context) (*CollectionResponse, error) {

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	return newCollectionResponse(GetServicer(ctx), box.GetUrlParameter(ctx, "collectionName"), col)
}
