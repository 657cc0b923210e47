package remap

import (
	"encoding/json"
	"errors"
	"time"
)

// Built-in temporal types. Internal representation is time.Time for all four;
// date and time-of-day carry zero values for the components they do not use.
var (
	Date          Type = dateType{}
	Time          Type = timeType{}
	DateTime      Type = dateTimeType{}
	NaiveDateTime Type = naiveDateTimeType{}
)

var (
	errInvalidDate          = errors.New("invalid date type")
	errInvalidTime          = errors.New("invalid time type")
	errInvalidDateTime      = errors.New("invalid datetime type")
	errInvalidNaiveDateTime = errors.New("invalid naive_datetime type")
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "15:04:05"
	clockLayoutFrac = "15:04:05.999999999"
	naiveLayout     = "2006-01-02T15:04:05"
	naiveLayoutSp   = "2006-01-02 15:04:05"
)

// dateType accepts time.Time, an ISO-8601 date string, or a {y, m, d} tuple.
type dateType struct{}

func (dateType) Load(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, errInvalidDate
		}
		return t, nil
	case []any:
		nn, ok := intTuple(d, 3)
		if !ok {
			return nil, errInvalidDate
		}
		return civil(nn[0], nn[1], nn[2], 0, 0, 0), nil
	}
	return nil, errInvalidDate
}

func (dateType) Dump(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(dateLayout), nil
	case string:
		return d, nil
	}
	return nil, errInvalidDate
}

func (dateType) Validate(v any) error {
	if _, ok := v.(time.Time); !ok {
		return errInvalidDate
	}
	return nil
}

// timeType accepts time.Time, an ISO-8601 clock string, or an {h, m, s} tuple.
type timeType struct{}

func (timeType) Load(v any) (any, error) {
	switch c := v.(type) {
	case time.Time:
		return c, nil
	case string:
		for _, layout := range []string{clockLayout, clockLayoutFrac} {
			if t, err := time.Parse(layout, c); err == nil {
				return t, nil
			}
		}
		return nil, errInvalidTime
	case []any:
		nn, ok := intTuple(c, 3)
		if !ok {
			return nil, errInvalidTime
		}
		return civil(0, 1, 1, nn[0], nn[1], nn[2]), nil
	}
	return nil, errInvalidTime
}

func (timeType) Dump(v any) (any, error) {
	switch c := v.(type) {
	case time.Time:
		return c.Format(clockLayout), nil
	case string:
		return c, nil
	}
	return nil, errInvalidTime
}

func (timeType) Validate(v any) error {
	if _, ok := v.(time.Time); !ok {
		return errInvalidTime
	}
	return nil
}

// dateTimeType accepts time.Time, an RFC3339 string (zone required), or a
// {y, m, d, h, mi, s} tuple interpreted as UTC.
type dateTimeType struct{}

func (dateTimeType) Load(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		t, err := parseRFC3339(d)
		if err != nil {
			return nil, errInvalidDateTime
		}
		return t, nil
	case []any:
		nn, ok := intTuple(d, 6)
		if !ok {
			return nil, errInvalidDateTime
		}
		return civil(nn[0], nn[1], nn[2], nn[3], nn[4], nn[5]), nil
	}
	return nil, errInvalidDateTime
}

func (dateTimeType) Dump(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return formatRFC3339Canonical(d), nil
	case string:
		return d, nil
	}
	return nil, errInvalidDateTime
}

func (dateTimeType) Validate(v any) error {
	if _, ok := v.(time.Time); !ok {
		return errInvalidDateTime
	}
	return nil
}

// naiveDateTimeType accepts time.Time, a zone-less ISO-8601 string, or a
// 6-tuple. Loaded values carry no zone information (UTC location).
type naiveDateTimeType struct{}

func (naiveDateTimeType) Load(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range []string{naiveLayout, naiveLayoutSp} {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return nil, errInvalidNaiveDateTime
	case []any:
		nn, ok := intTuple(d, 6)
		if !ok {
			return nil, errInvalidNaiveDateTime
		}
		return civil(nn[0], nn[1], nn[2], nn[3], nn[4], nn[5]), nil
	}
	return nil, errInvalidNaiveDateTime
}

func (naiveDateTimeType) Dump(v any) (any, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(naiveLayout), nil
	case string:
		return d, nil
	}
	return nil, errInvalidNaiveDateTime
}

func (naiveDateTimeType) Validate(v any) error {
	if _, ok := v.(time.Time); !ok {
		return errInvalidNaiveDateTime
	}
	return nil
}

// ---- helpers ----

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC; RFC3339Nano trims trailing zeros.
	return t.UTC().Format(time.RFC3339Nano)
}

func civil(y, m, d, h, mi, s int) time.Time {
	return time.Date(y, time.Month(m), d, h, mi, s, 0, time.UTC)
}

// intTuple reads a fixed-size tuple of numbers out of a decoded list.
func intTuple(list []any, n int) ([]int, bool) {
	if len(list) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, v := range list {
		iv, ok := asInt(v)
		if !ok {
			return nil, false
		}
		out[i] = iv
	}
	return out, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
