package collection

import (
	"fmt"

	"github.com/SierraSoftworks/connor"
	json2 "github.com/go-json-experiment/json"
)

// Match reports whether the JSON document satisfies filter. An empty filter
// matches everything.
func Match(filter map[string]any, payload []byte) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}

	data := map[string]any{}
	if err := json2.Unmarshal(payload, &data); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}

	match, err := connor.Match(filter, data)
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}
	return match, nil
}
