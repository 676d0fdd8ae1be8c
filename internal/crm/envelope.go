// Package crm implements the client for the upstream CRM REST API.
//
// Every paginated endpoint wraps its rows in one of a few envelope
// shapes; NormalizeEnvelope is the single place that unpacks them.
package crm

import (
	"bytes"
	"encoding/json"
)

// envelope covers the object-shaped wrappers the CRM returns. The same
// struct decodes both the `data` and `results` variants.
type envelope struct {
	Data     []json.RawMessage `json:"data"`
	Results  []json.RawMessage `json:"results"`
	TotalRow flexInt           `json:"total_row"`
}

// NormalizeEnvelope extracts (rows, totalCount) from a raw pagination
// response body. Observed shapes, first match wins:
//
//  1. an array whose first element carries a `data` array and `total_row`
//  2. an object with a `data` array and `total_row`
//  3. an object with a `results` array
//
// Anything else — including malformed JSON — degrades to an empty page
// with a zero count. No error is ever returned; list fetches fail open.
func NormalizeEnvelope(body []byte) ([]json.RawMessage, int) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, 0
	}

	if trimmed[0] == '[' {
		var arr []envelope
		if err := json.Unmarshal(trimmed, &arr); err == nil && len(arr) > 0 && arr[0].Data != nil {
			return arr[0].Data, int(arr[0].TotalRow)
		}
		return nil, 0
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil {
		if env.Data != nil {
			return env.Data, int(env.TotalRow)
		}
		if env.Results != nil {
			return env.Results, int(env.TotalRow)
		}
	}
	return nil, 0
}
