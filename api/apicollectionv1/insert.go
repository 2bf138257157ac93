package apicollectionv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// insert reads a stream of JSON documents. The status is sent with the first
// result, so a failure after that only ends the stream.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	col, err := resolveCollection(ctx, true)
	if err != nil {
		return err
	}

	jsonReader := json.NewDecoder(r.Body)

	for i := 0; true; i++ {
		item := map[string]any{}
		err := jsonReader.Decode(&item)
		if err == io.EOF {
			if i == 0 {
				w.WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		if err != nil {
			return badRequest(err)
		}

		document, err := col.Insert(item)
		if err != nil {
			return err
		}

		if i == 0 {
			w.WriteHeader(http.StatusCreated)
		}
		if err := writeDocument(w, document.Handle, document.Payload); err != nil {
			return err
		}
	}

	return nil
}
