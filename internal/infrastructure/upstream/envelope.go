package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The upstream API is not consistent about response shapes: list endpoints
// sometimes return a bare array, sometimes {"data": [...]}, and mutation
// endpoints wrap their payload in {"success", "message", "data"}. Everything
// entering the terminal goes through normalizeData so internal code only
// ever sees one shape.

// normalizeData unwraps the payload out of whichever envelope the upstream
// used. A bare array or object without a "data" key is returned as is.
func normalizeData(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data
	}
	return trimmed
}

// extractMessage pulls the human-readable message out of an error body.
// Checks the top level first, then inside "data".
func extractMessage(body []byte) string {
	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	if len(env.Data) > 0 {
		var inner struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Data, &inner); err == nil {
			return inner.Message
		}
	}
	return ""
}

// flexNumber decodes a JSON number that the upstream may serialize as
// either a number or a quoted string (unit_cost in particular).
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Mirror the UI's parseFloat behavior: unparseable means zero,
			// not a failed catalog load.
			*f = 0
			return nil
		}
		*f = flexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}

// extractOrderID digs the order identifier out of a create-order response.
// Consumed opportunistically: a nil result is not an error, the caller
// falls back to a local receipt number.
func extractOrderID(body []byte) *int64 {
	data := normalizeData(body)
	if len(data) == 0 {
		return nil
	}
	var shape struct {
		OrderID *flexNumber `json:"order_id"`
		ID      *flexNumber `json:"id"`
		Order   *struct {
			OrderID *flexNumber `json:"order_id"`
			ID      *flexNumber `json:"id"`
		} `json:"order"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil
	}
	pick := func(candidates ...*flexNumber) *int64 {
		for _, c := range candidates {
			if c != nil {
				id := int64(*c)
				return &id
			}
		}
		return nil
	}
	if shape.Order != nil {
		if id := pick(shape.Order.OrderID, shape.Order.ID); id != nil {
			return id
		}
	}
	return pick(shape.OrderID, shape.ID)
}
