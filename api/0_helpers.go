package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/slotdb/api/apicollectionv1"
	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
	"github.com/fulldump/slotdb/service"
	"github.com/fulldump/slotdb/slotarray"
	"github.com/fulldump/slotdb/slotmap"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json2.Marshal(map[string]any{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	data, err := p.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening || status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

type errorStatus struct {
	errors      []error
	status      int
	description string
}

var errorStatuses = []errorStatus{
	{
		errors:      []error{ErrUnauthorized},
		status:      http.StatusUnauthorized,
		description: "user is not authenticated",
	},
	{
		errors:      []error{ErrUnavailable},
		status:      http.StatusServiceUnavailable,
		description: "try again later",
	},
	{
		errors: []error{
			service.ErrorCollectionNotFound,
			collection.ErrDocumentNotFound,
			collection.ErrIndexNotFound,
		},
		status:      http.StatusNotFound,
		description: "not found",
	},
	{
		errors: []error{
			service.ErrorCollectionAlreadyExists,
			collection.ErrIndexExists,
			collection.ErrIndexConflict,
		},
		status:      http.StatusConflict,
		description: "conflict",
	},
	{
		errors: []error{
			apicollectionv1.ErrBadRequest,
			service.ErrorCollectionNameRequired,
			collection.ErrIndexField,
			collection.ErrIndexType,
			collection.ErrIndexOptions,
			collection.ErrPatchNotObject,
			collection.ErrPatchMemberName,
			slotmap.ErrMalformedHandle,
			io.EOF,
			io.ErrUnexpectedEOF,
		},
		status:      http.StatusBadRequest,
		description: "bad request",
	},
	{
		errors: []error{
			database.ErrTooManyCollections,
			slotmap.ErrCapacityExhausted,
			slotarray.ErrCapacityExhausted,
		},
		status:      http.StatusInsufficientStorage,
		description: "capacity exhausted",
	},
}

func statusOf(err error) (int, string) {
	for _, s := range errorStatuses {
		for _, target := range s.errors {
			if errors.Is(err, target) {
				return s.status, s.description
			}
		}
	}

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	if errors.As(err, &syntaxError) || errors.As(err, &typeError) {
		return http.StatusBadRequest, "Malformed JSON"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

// PrettyErrorInterceptor writes the error left by the handler, if any, as a
// PrettyError with a matching status code.
func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, description := statusOf(err)

		w := box.GetResponse(ctx)
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
