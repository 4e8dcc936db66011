package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OutputToken is the token a market mints to suppliers.
type OutputToken struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Market is a single lending market as returned by the subgraph.
type Market struct {
	OutputToken      OutputToken `json:"outputToken"`
	CreatedTimestamp Timestamp   `json:"createdTimestamp"`
}

// Timestamp is a unix timestamp in seconds. Subgraphs serialize BigInt
// fields as strings, so both JSON numbers and decimal strings are accepted.
type Timestamp uint64

// UnmarshalJSON decodes a Timestamp from a JSON number or string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	if raw == "" {
		*t = 0
		return nil
	}

	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	*t = Timestamp(val)
	return nil
}
