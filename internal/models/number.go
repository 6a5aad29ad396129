package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
)

// FlexInt is an integer that also accepts a quoted number, as form inputs send them.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw, ok := unquoteNumber(b)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + string(b), Type: reflect.TypeOf(int(0))}
	}
	*n = FlexInt(v)
	return nil
}

// FlexFloat is FlexInt for fractional values.
type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(b []byte) error {
	raw, ok := unquoteNumber(b)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + string(b), Type: reflect.TypeOf(float64(0))}
	}
	*n = FlexFloat(v)
	return nil
}

// unquoteNumber strips surrounding quotes and spaces. ok is false for null,
// which leaves the current value untouched like encoding/json does.
func unquoteNumber(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", false
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = bytes.TrimSpace(b[1 : len(b)-1])
	}
	return string(b), true
}
