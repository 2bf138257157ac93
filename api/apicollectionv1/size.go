package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/slotarray"
)

// size reports the slot usage of a collection.
func size(ctx context.Context) (*collection.Stats, error) {

	col, err := resolveCollection(ctx, false)
	if err != nil {
		return nil, err
	}

	stats := col.Stats()
	return &stats, nil
}

type statsResponse struct {
	Collections slotarray.Stats `json:"collections"`
	Documents   int             `json:"documents"`
}

// stats reports the usage of the collection registry.
func stats(ctx context.Context) (*statsResponse, error) {

	s := GetServicer(ctx)

	result := &statsResponse{
		Collections: s.Stats(),
	}
	for _, col := range s.ListCollections() {
		result.Documents += col.Len()
	}

	return result, nil
}
