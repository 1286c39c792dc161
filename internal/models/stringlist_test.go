package models

import (
	"encoding/json"
	"testing"
)

func TestStringListDecode(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []string
		malformed bool
	}{
		{"array", `["a","b"]`, []string{"a", "b"}, false},
		{"empty array", `[]`, []string{}, false},
		{"bare string", `"img.jpg"`, []string{"img.jpg"}, false},
		{"empty string", `""`, []string{}, false},
		{"null", `null`, nil, false},
		{"object", `{"u":1}`, nil, true},
		{"number", `42`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list StringList
			if err := json.Unmarshal([]byte(tt.raw), &list); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if list.Malformed != tt.malformed {
				t.Fatalf("expected malformed=%v, got %v", tt.malformed, list.Malformed)
			}
			if len(list.Values) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, list.Values)
			}
			for i := range tt.want {
				if list.Values[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, list.Values)
				}
			}
		})
	}
}

func TestStringListEncode(t *testing.T) {
	data, err := json.Marshal(StringList{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected nil list to serialize as [], got %s", data)
	}

	data, err = json.Marshal(StringList{Values: []string{"x"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["x"]` {
		t.Fatalf("expected [\"x\"], got %s", data)
	}
}
