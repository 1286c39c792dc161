package models

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// StringList decodes the image list field of legacy records, which over
// time has held a JSON array, a bare string, null, or garbage. A bare
// string becomes a one-element list. Anything that is neither a string
// list, a string nor null decodes to empty and sets Malformed so the
// migration can report the dropped value instead of losing it silently.
type StringList struct {
	Values    []string
	Malformed bool `json:"-"`
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	l.Malformed = false

	// null decodes into a nil slice here, which is fine: Migrate turns
	// nil into an empty list and MarshalJSON always emits [].
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		l.Values = values
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			l.Values = []string{}
		} else {
			l.Values = []string{single}
		}
		return nil
	}

	l.Values = nil
	l.Malformed = true
	return nil
}

// UnmarshalYAML mirrors the JSON behaviour for seed lists in config
// files: a sequence or a bare scalar string, anything else is malformed.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	l.Malformed = false

	var values []string
	if err := value.Decode(&values); err == nil {
		l.Values = values
		return nil
	}

	var single string
	if err := value.Decode(&single); err == nil {
		if single == "" {
			l.Values = []string{}
		} else {
			l.Values = []string{single}
		}
		return nil
	}

	l.Values = nil
	l.Malformed = true
	return nil
}

// MarshalJSON always emits a well-formed list; nil serializes as [].
func (l StringList) MarshalJSON() ([]byte, error) {
	if l.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Values)
}
