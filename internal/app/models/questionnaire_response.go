package models

import (
	"github.com/goccy/go-json"
)

type ResponseValueType string

const (
	ResponseValueString   ResponseValueType = "string"
	ResponseValueNumber   ResponseValueType = "number"
	ResponseValueBoolean  ResponseValueType = "boolean"
	ResponseValueDateTime ResponseValueType = "dateTime"
	ResponseValueTime     ResponseValueType = "time"
	ResponseValueQuantity ResponseValueType = "quantity"
)

// ResponseValue is one discrete answer. Value holds a string, float64, bool or,
// for structured questions, a StructuredValue whose Type is the structured type.
type ResponseValue struct {
	Type   ResponseValueType `json:"type"`
	Value  any               `json:"value,omitempty"`
	Unit   *Coding           `json:"unit,omitempty"`
	Coding *Coding           `json:"coding,omitempty"`
}

func StringValue(value string) ResponseValue {
	return ResponseValue{Type: ResponseValueString, Value: value}
}

func NumberValue(value float64) ResponseValue {
	return ResponseValue{Type: ResponseValueNumber, Value: value}
}

func BooleanValue(value bool) ResponseValue {
	return ResponseValue{Type: ResponseValueBoolean, Value: value}
}

func DateTimeValue(value string) ResponseValue {
	return ResponseValue{Type: ResponseValueDateTime, Value: value}
}

func TimeValue(value string) ResponseValue {
	return ResponseValue{Type: ResponseValueTime, Value: value}
}

func QuantityValue(value float64, unit *Coding) ResponseValue {
	return ResponseValue{Type: ResponseValueQuantity, Value: value, Unit: unit}
}

func CodingValue(coding Coding) ResponseValue {
	return ResponseValue{Type: ResponseValueString, Value: coding.Code, Coding: &coding}
}

func StructuredResponseValue(value StructuredValue) ResponseValue {
	return ResponseValue{Type: ResponseValueType(value.StructuredType()), Value: value}
}

// Structured returns the structured payload, if this value carries one.
func (v ResponseValue) Structured() (StructuredValue, bool) {
	structured, ok := v.Value.(StructuredValue)
	return structured, ok
}

// HasValue reports whether the primary payload is present. Empty strings and
// empty structured lists count as absent; false and 0 do not.
func (v ResponseValue) HasValue() bool {
	switch value := v.Value.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case StructuredValue:
		return value.Len() > 0
	case []any:
		return len(value) > 0
	default:
		return true
	}
}

func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   ResponseValueType `json:"type"`
		Value  json.RawMessage   `json:"value"`
		Unit   *Coding           `json:"unit"`
		Coding *Coding           `json:"coding"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.Type = raw.Type
	v.Unit = raw.Unit
	v.Coding = raw.Coding
	v.Value = nil

	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil
	}

	if structuredType := StructuredType(raw.Type); structuredType.IsValid() {
		structured, err := DecodeStructuredValue(structuredType, raw.Value)
		if err != nil {
			return err
		}
		v.Value = structured
		return nil
	}

	var plain any
	if err := json.Unmarshal(raw.Value, &plain); err != nil {
		return err
	}
	v.Value = plain
	return nil
}

// QuestionnaireResponse is the answer record of one leaf question.
type QuestionnaireResponse struct {
	QuestionID     string          `json:"question_id"`
	LinkID         string          `json:"link_id"`
	Values         []ResponseValue `json:"values"`
	Note           string          `json:"note,omitempty"`
	BodySite       *Coding         `json:"body_site,omitempty"`
	Method         *Coding         `json:"method,omitempty"`
	StructuredType StructuredType  `json:"structured_type,omitempty"`
}

// IsAnswered reports whether any value carries a payload, a coding or a unit.
func (r QuestionnaireResponse) IsAnswered() bool {
	for _, value := range r.Values {
		if value.HasValue() || value.Coding != nil || value.Unit != nil {
			return true
		}
	}
	return false
}

// StructuredValue returns the structured list kept in the first value.
func (r QuestionnaireResponse) StructuredValue() (StructuredValue, bool) {
	if r.StructuredType == "" || len(r.Values) == 0 {
		return nil, false
	}
	return r.Values[0].Structured()
}
