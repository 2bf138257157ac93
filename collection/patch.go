package collection

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	ErrPatchNotObject  = errors.New("patch must be a JSON object")
	ErrPatchMemberName = errors.New("patch member name cannot be empty")
)

// MergePatch applies a JSON merge patch (RFC 7396) to payload: null members
// are removed, object members are merged recursively and anything else
// replaces the current value.
func MergePatch(payload []byte, patch any) ([]byte, error) {
	diff, ok := patch.(map[string]any)
	if !ok {
		return nil, ErrPatchNotObject
	}
	return mergePatch(payload, diff, "", "")
}

// getPrefix and setPrefix address the same member for gjson and sjson, which
// differ on numeric member names.
func mergePatch(payload []byte, diff map[string]any, getPrefix, setPrefix string) ([]byte, error) {
	var err error
	for _, key := range slices.Sorted(maps.Keys(diff)) {
		if key == "" {
			return nil, fmt.Errorf("patch '%s': %w", strings.TrimSuffix(getPrefix, "."), ErrPatchMemberName)
		}
		getPath := getPrefix + escapePath(key)
		path := setPrefix + escapeSetPath(key)

		switch value := diff[key].(type) {
		case nil:
			payload, err = sjson.DeleteBytes(payload, path)
		case map[string]any:
			if !gjson.GetBytes(payload, getPath).IsObject() {
				payload, err = sjson.SetRawBytes(payload, path, []byte("{}"))
				if err != nil {
					break
				}
			}
			payload, err = mergePatch(payload, value, getPath+".", path+".")
		default:
			payload, err = sjson.SetBytes(payload, path, value)
		}

		if err != nil {
			return nil, fmt.Errorf("patch '%s': %w", key, err)
		}
	}
	return payload, nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`!`, `\!`,
)

// escapePath turns an object member name into a one-level gjson path.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}

// escapeSetPath is escapePath for sjson, which takes numeric names as array
// positions unless they are prefixed with a colon.
func escapeSetPath(key string) string {
	key = pathEscaper.Replace(key)
	if key != "" && strings.Trim(key, "0123456789") == "" {
		key = ":" + key
	}
	return key
}
