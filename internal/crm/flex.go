package crm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The CRM backend is loose about scalar types: ids arrive as numbers or
// strings depending on the endpoint, counts and prices sometimes come
// quoted. The flex* types absorb that without failing the whole row.

// flexID decodes a JSON string or number into a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

// flexInt decodes a JSON number or numeric string into an int. Anything
// unparseable becomes zero rather than an error.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt(int(fl))
		return nil
	}
	*f = 0
	return nil
}

// flexFloat decodes a JSON number or numeric string into a float64.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexFloat(fl)
		return nil
	}
	*f = 0
	return nil
}
