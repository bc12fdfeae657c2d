package models

import (
	"database/sql/driver"
	"encoding/json"
)

// NullableString is an optional field of a partial update. Set reports that
// the field was present in the request, so an explicit null (Set with a nil
// Val) clears the column while an absent field leaves it alone.
type NullableString struct {
	Val *string
	Set bool
}

// SetTo returns a NullableString that overwrites the column with v.
func SetTo(v *string) NullableString {
	return NullableString{Val: v, Set: true}
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Val = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Val = &s
	return nil
}

// Value exposes the string to validation rules; nil when absent or null.
func (n NullableString) Value() (driver.Value, error) {
	if n.Val == nil {
		return nil, nil
	}
	return *n.Val, nil
}
