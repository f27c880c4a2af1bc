package ast

import (
	"encoding/json"
	"fmt"
)

// MockValueKind discriminates the variants of a MockValue.
type MockValueKind int

const (
	MockString MockValueKind = iota
	MockNumber
	MockBoolean
)

// MockValue is a closed tagged union over string, number, and boolean,
// used for @mock and @example annotation values. It marshals as the bare
// JSON literal (untagged), matching how values appear in mock responses.
type MockValue struct {
	Kind MockValueKind
	Str  string
	Num  float64
	Bool bool
}

// StringValue returns a string-kinded MockValue.
func StringValue(s string) *MockValue {
	return &MockValue{Kind: MockString, Str: s}
}

// NumberValue returns a number-kinded MockValue.
func NumberValue(n float64) *MockValue {
	return &MockValue{Kind: MockNumber, Num: n}
}

// BoolValue returns a boolean-kinded MockValue.
func BoolValue(b bool) *MockValue {
	return &MockValue{Kind: MockBoolean, Bool: b}
}

// Value returns the variant as an any, suitable for JSON rendering.
func (v *MockValue) Value() any {
	switch v.Kind {
	case MockNumber:
		return v.Num
	case MockBoolean:
		return v.Bool
	default:
		return v.Str
	}
}

// MarshalJSON implements json.Marshaler, emitting the bare literal.
func (v MockValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Value())
}

// UnmarshalJSON implements json.Unmarshaler by sniffing the literal type.
func (v *MockValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		*v = MockValue{Kind: MockString, Str: val}
	case float64:
		*v = MockValue{Kind: MockNumber, Num: val}
	case bool:
		*v = MockValue{Kind: MockBoolean, Bool: val}
	default:
		return fmt.Errorf("mock value must be string, number, or boolean, got %T", raw)
	}
	return nil
}
