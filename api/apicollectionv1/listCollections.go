package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/utils"
)

func listCollections(ctx context.Context) ([]*CollectionResponse, error) {

	s := GetServicer(ctx)
	collections := s.ListCollections()

	result := []*CollectionResponse{}
	for _, name := range utils.GetKeys(collections) {
		item, err := newCollectionResponse(s, name, collections[name])
		if err != nil {
			// dropped in the meantime
			continue
		}
		result = append(result, item)
	}

	return result, nil
}
