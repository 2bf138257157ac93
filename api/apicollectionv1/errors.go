package apicollectionv1

import (
	"errors"
	"fmt"
)

// ErrBadRequest marks errors caused by the request content.
var ErrBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}
