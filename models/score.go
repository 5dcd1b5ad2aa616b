package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/Dosada05/ohm-scoreboard/utils"
)

// Score is a stored score. Older clients wrote scores as numeric strings, so
// decoding accepts both forms and falls back to 0 for anything unparseable.
type Score int64

func NewScore(v int64) *Score {
	s := Score(v)
	return &s
}

func (s Score) Int64() int64 {
	return int64(s)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = 0
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, _ := utils.ParseIntPrefix(str)
		*s = Score(n)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, _ := numberToInt64(string(data))
		*s = Score(n)
	default:
		*s = 0
	}
	return nil
}

// numberToInt64 truncates a JSON number. ok is false when the number does
// not fit a float64 at all.
func numberToInt64(num string) (int64, bool) {
	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(math.Trunc(f)), true
}

// ParseSubmittedScore reads a score sent by the game client. JSON numbers are
// truncated toward zero, strings are read like parseInt. ok is false for
// anything without leading digits (including null and a missing value) and
// for numbers outside the float64 range.
func ParseSubmittedScore(raw json.RawMessage) (n int64, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	switch raw[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		return utils.ParseIntPrefix(str)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return 0, false
		}
		return numberToInt64(num.String())
	}
	return 0, false
}
