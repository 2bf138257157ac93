package apicollectionv1

import (
	"context"
	"io"
	"net/http"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/slotdb/utils"
)

// setDefaults merges the body into the current defaults. A null value removes
// that default.
func setDefaults(ctx context.Context, r *http.Request) (map[string]any, error) {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if err := json2.Unmarshal(requestBody, &changes); err != nil {
		return nil, badRequest(err)
	}

	col, err := resolveCollection(ctx, true)
	if err != nil {
		return nil, err
	}

	defaults := col.Defaults()
	if defaults == nil {
		defaults = map[string]any{}
	}
	for _, k := range utils.GetKeys(changes) {
		if changes[k] == nil {
			delete(defaults, k)
			continue
		}
		defaults[k] = changes[k]
	}

	col.SetDefaults(defaults)

	return col.Defaults(), nil
}
