package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The upstream APIs are loose about scalar encodings: ids show up as strings
// or numbers, volumes as numbers or numeric strings, timestamps occasionally
// as floats. The flex types decode whatever arrives and fall back to the
// zero value instead of failing the whole record.

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	*s = flexString(string(data))
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*f = 0
			return nil
		}
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(val)
		return nil
	}
	var val float64
	if err := json.Unmarshal(data, &val); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(val)
	return nil
}

type flexInt int64

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var val flexFloat
	if err := val.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = flexInt(val)
	return nil
}
