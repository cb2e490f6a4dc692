package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a decimal property amount.
// The catalog serializes decimals as strings, older revisions as numbers; both decode.
// It always encodes as a decimal string.
type Amount float64

// NewAmount returns a pointer to an Amount holding v.
func NewAmount(v float64) *Amount {
	a := Amount(v)
	return &a
}

// Float64 returns the amount as float64. A nil amount is zero.
func (a *Amount) Float64() float64 {
	if a == nil {
		return 0
	}
	return float64(*a)
}

// String formats the amount without trailing zeros.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	*a = Amount(v)
	return nil
}
