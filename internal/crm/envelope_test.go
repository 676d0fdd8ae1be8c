package crm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvelope(t *testing.T) {
	wantRows := []string{`{"lead_id":"1"}`, `{"lead_id":"2"}`}

	tests := []struct {
		name      string
		body      string
		wantTotal int
		wantRows  []string
	}{
		{
			name:      "array of one with data",
			body:      `[{"data":[{"lead_id":"1"},{"lead_id":"2"}],"total_row":27}]`,
			wantTotal: 27,
			wantRows:  wantRows,
		},
		{
			name:      "object with data",
			body:      `{"data":[{"lead_id":"1"},{"lead_id":"2"}],"total_row":27}`,
			wantTotal: 27,
			wantRows:  wantRows,
		},
		{
			name:      "object with results",
			body:      `{"results":[{"lead_id":"1"},{"lead_id":"2"}],"total_row":27}`,
			wantTotal: 27,
			wantRows:  wantRows,
		},
		{
			name:      "total_row as string",
			body:      `{"data":[{"lead_id":"1"},{"lead_id":"2"}],"total_row":"27"}`,
			wantTotal: 27,
			wantRows:  wantRows,
		},
		{
			name:      "missing total_row defaults to zero",
			body:      `{"data":[{"lead_id":"1"},{"lead_id":"2"}]}`,
			wantTotal: 0,
			wantRows:  wantRows,
		},
		{
			name: "empty data array",
			body: `{"data":[],"total_row":0}`,
		},
		{
			name: "unknown object shape",
			body: `{"rows":[{"lead_id":"1"}]}`,
		},
		{
			name: "array without data member",
			body: `[{"lead_id":"1"}]`,
		},
		{
			name: "empty array",
			body: `[]`,
		},
		{
			name: "scalar",
			body: `42`,
		},
		{
			name: "malformed json",
			body: `{"data":[`,
		},
		{
			name: "empty body",
			body: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, total := NormalizeEnvelope([]byte(tt.body))
			assert.Equal(t, tt.wantTotal, total)

			require.Len(t, rows, len(tt.wantRows))
			for i, want := range tt.wantRows {
				assert.JSONEq(t, want, string(rows[i]))
			}
		})
	}
}

func TestFlexScalars(t *testing.T) {
	var rec struct {
		ID    flexID    `json:"id"`
		Count flexInt   `json:"count"`
		Price flexFloat `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"count":"7","price":"1234.5"}`), &rec))
	assert.Equal(t, "42", rec.ID.String())
	assert.Equal(t, 7, int(rec.Count))
	assert.Equal(t, 1234.5, float64(rec.Price))

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","count":null,"price":"n/a"}`), &rec))
	assert.Equal(t, "abc", rec.ID.String())
	assert.Equal(t, 0, int(rec.Count))
	assert.Equal(t, 0.0, float64(rec.Price))
}
