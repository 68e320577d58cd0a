package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// Amount is a unit price or line total. It is either a flat whole-peso value
// (serialized as a JSON number) or a verbatim price string such as
// "5500 - 6000" used by made-to-order items (serialized as a JSON string).
// The wire form survives a marshal/unmarshal round trip unchanged.
type Amount struct {
	value int64
	raw   string
	flat  bool
}

// FlatAmount builds an Amount holding a plain numeric price.
func FlatAmount(value int64) Amount {
	return Amount{value: value, flat: true}
}

// RawAmount builds an Amount carrying the original price string verbatim.
func RawAmount(raw string) Amount {
	return Amount{raw: raw}
}

// IsFlat reports whether the amount is a plain numeric value.
func (a Amount) IsFlat() bool {
	return a.flat
}

// Value returns the numeric value; zero for raw amounts.
func (a Amount) Value() int64 {
	if !a.flat {
		return 0
	}
	return a.value
}

// Raw returns the verbatim price string; empty for flat amounts.
func (a Amount) Raw() string {
	if a.flat {
		return ""
	}
	return a.raw
}

func (a Amount) String() string {
	if a.flat {
		return strconv.FormatInt(a.value, 10)
	}
	return a.raw
}

// Equal reports whether two amounts carry the same wire value.
func (a Amount) Equal(b Amount) bool {
	if a.flat != b.flat {
		return false
	}
	if a.flat {
		return a.value == b.value
	}
	return a.raw == b.raw
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.flat {
		return json.Marshal(a.value)
	}
	return json.Marshal(a.raw)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch typed := v.(type) {
	case float64:
		if typed == math.Trunc(typed) {
			*a = FlatAmount(int64(typed))
			return nil
		}
		*a = RawAmount(strconv.FormatFloat(typed, 'f', -1, 64))
		return nil
	case string:
		*a = RawAmount(typed)
		return nil
	default:
		*a = Amount{}
		return nil
	}
}
