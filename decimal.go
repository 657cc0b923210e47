package remap

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// Decimal is the arbitrary-precision numeric type. Internal representation is
// decimal.Decimal; the wire representation is a decimal string.
var Decimal Type = decimalType{}

var errInvalidDecimal = errors.New("invalid decimal type")

type decimalType struct{}

func (decimalType) Load(v any) (any, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		out, err := decimal.NewFromString(d)
		if err != nil {
			return nil, errInvalidDecimal
		}
		return out, nil
	case json.Number:
		out, err := decimal.NewFromString(d.String())
		if err != nil {
			return nil, errInvalidDecimal
		}
		return out, nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case float64:
		return decimal.NewFromFloat(d), nil
	}
	return nil, errInvalidDecimal
}

func (decimalType) Dump(v any) (any, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d.String(), nil
	case string:
		if _, err := decimal.NewFromString(d); err != nil {
			return nil, errInvalidDecimal
		}
		return d, nil
	}
	return nil, errInvalidDecimal
}

func (decimalType) Validate(v any) error {
	if _, ok := v.(decimal.Decimal); !ok {
		return errInvalidDecimal
	}
	return nil
}
