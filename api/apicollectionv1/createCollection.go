package apicollectionv1

import (
	"context"
	"net/http"
)

type createCollectionRequest struct {
	Name     string         `json:"name"`
	Defaults map[string]any `json:"defaults"`
}

func createCollection(ctx context.Context, w http.ResponseWriter, input *createCollectionRequest) (*CollectionResponse, error) {

	s := GetServicer(ctx)

	col, err := s.CreateCollection(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Defaults != nil {
		col.SetDefaults(input.Defaults)
	}

	result, err := newCollectionResponse(s, input.Name, col)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return result, nil
}
