package records

import (
	"encoding/json"
	"unicode/utf8"
)

// Text is a string field of a stored record. It survives encoding byte for
// byte: valid UTF-8 is written as a plain JSON string, anything else as
// {"base64": "..."} because encoding/json rewrites invalid bytes to U+FFFD.
type Text string

type rawText struct {
	Base64 []byte `json:"base64"`
}

func (t Text) MarshalJSON() ([]byte, error) {
	if utf8.ValidString(string(t)) {
		return json.Marshal(string(t))
	}
	return json.Marshal(rawText{Base64: []byte(t)})
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var raw rawText
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*t = Text(raw.Base64)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// Texts converts raw strings for storage.
func Texts(raw []string) []Text {
	out := make([]Text, len(raw))
	for i, s := range raw {
		out[i] = Text(s)
	}
	return out
}

// Strings is the inverse of Texts.
func Strings(texts []Text) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = string(t)
	}
	return out
}

// StringPtr keeps nil as nil.
func (t *Text) StringPtr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
