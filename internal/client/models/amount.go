package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a decimal money/quantity value as the backend serializes it.
// The API emits decimals as JSON strings ("149.50") but some legacy
// endpoints emit bare numbers, so both decode.
//
// Amounts are kept as strings end to end: the server owns all arithmetic
// (totals, balances); the client only displays and, at most, sums values
// it already fetched.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*a = Amount(v)
		return nil
	}
	*a = Amount(s)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte(`null`), nil
	}
	return json.Marshal(string(a))
}

// Float64 parses the amount for display-side aggregation. Invalid or empty
// values count as zero; correctness of money math stays with the server.
func (a Amount) Float64() float64 {
	v, err := strconv.ParseFloat(string(a), 64)
	if err != nil {
		return 0
	}
	return v
}

func (a Amount) String() string {
	if a == "" {
		return "0"
	}
	return string(a)
}
