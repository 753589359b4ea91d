package storage

import (
	"encoding/json"
	"strings"
)

// EncodeList serializes an ordered list of strings to its stored text form.
// Blank entries are dropped before serialization; an all-blank or nil list
// encodes as an empty JSON array.
func EncodeList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			kept = append(kept, it)
		}
	}
	b, err := json.Marshal(kept)
	if err != nil {
		// []string cannot fail to marshal; keep the compiler honest.
		return "[]"
	}
	return string(b)
}

// DecodeList deserializes the stored text form back to an ordered list.
// Blank input yields an empty list. Content that is not a JSON string
// array is tolerated defensively by treating the raw text as a
// single-element list, so a corrupted row still renders something.
func DecodeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{raw}
	}
	if items == nil {
		return []string{}
	}
	return items
}
