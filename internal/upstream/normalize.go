package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList normalizes the upstream's shape-sniffing hazard at the adapter
// boundary: repeated elements arrive as an array normally, as a bare object
// when there is exactly one, and as null/absent when there are none. Every
// caller downstream of this sees a plain slice.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var single T
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		return []T{single}, nil
	default:
		return nil, fmt.Errorf("upstream: unexpected JSON shape: %s", jsonSnippet(trimmed))
	}
}

func jsonSnippet(data []byte) string {
	const max = 64
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
