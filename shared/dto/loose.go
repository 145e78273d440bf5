package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseInt decodes a JSON number or a numeric string. Present reports whether the
// field appeared in the payload with a non-null value. A value that is not a whole
// number does not fail the decode; it leaves Invalid set so the caller can report
// it alongside its other field errors.
type LooseInt struct {
	Value   int64
	Present bool
	Invalid bool
}

func NewLooseInt(v int64) LooseInt {
	return LooseInt{Value: v, Present: true}
}

func (l *LooseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = LooseInt{}

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		raw = strings.TrimSpace(raw)
		if raw == "" {
			*l = LooseInt{}

			return nil
		}

		data = []byte(raw)
	}

	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		floatValue, floatErr := strconv.ParseFloat(string(data), 64)
		if floatErr != nil || floatValue != math.Trunc(floatValue) ||
			floatValue < math.MinInt64 || floatValue >= math.MaxInt64 {
			*l = LooseInt{Present: true, Invalid: true}

			return nil
		}

		value = int64(floatValue)
	}

	*l = LooseInt{Value: value, Present: true}

	return nil
}

func (l LooseInt) MarshalJSON() ([]byte, error) {
	if !l.Present || l.Invalid {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(l.Value, 10)), nil
}

// Ptr returns the value as a pointer, nil when absent or invalid.
func (l LooseInt) Ptr() *int64 {
	if !l.Present || l.Invalid {
		return nil
	}

	v := l.Value

	return &v
}
