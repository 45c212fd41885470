package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString accepts a JSON string, number or bool and keeps its text form.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	default:
		*s = FlexString(strings.Trim(string(b), `"`))
		return nil
	}
}

func (s FlexString) String() string { return string(s) }
