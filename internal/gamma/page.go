package gamma

import (
	"bytes"
	"encoding/json"
)

// page is the normalized form of a listing response. The upstream endpoints
// return either a bare JSON array or an object wrapping the array in "data",
// with an optional "next" cursor on the trade endpoint. Anything else
// decodes to an empty page rather than an error.
type page struct {
	Records []json.RawMessage
	Next    string
}

func decodePage(raw json.RawMessage) page {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return page{}
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return page{}
		}
		return page{Records: records}
	case '{':
		var wrapped struct {
			Data []json.RawMessage `json:"data"`
			Next string            `json:"next"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return page{}
		}
		return page{Records: wrapped.Data, Next: wrapped.Next}
	default:
		return page{}
	}
}
