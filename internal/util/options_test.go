package util

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeOptions(t *testing.T) {
	options := []string{"Paris", "London", "Berlin", "Madrid"}

	encoded, err := EncodeOptions(options)
	if err != nil {
		t.Fatalf("EncodeOptions: %v", err)
	}

	decoded := DecodeOptions(encoded)
	if !reflect.DeepEqual(decoded, options) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, options)
	}
}

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "json array",
			text: `["a", "b", "c", "d"]`,
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "legacy single quotes",
			text: `['a', 'b', 'c', 'd']`,
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "legacy mixed quotes",
			text: `['It''s wrong', "double", 'x', 'y']`,
			want: nil, // 非法字面量，降级为空
		},
		{
			name: "legacy escaped quote",
			text: `['it\'s a', 'b', 'c', 'd']`,
			want: []string{"it's a", "b", "c", "d"},
		},
		{
			name: "legacy with spaces",
			text: `[ 'one' , "two" ]`,
			want: []string{"one", "two"},
		},
		{
			name: "empty string",
			text: "",
			want: nil,
		},
		{
			name: "garbage",
			text: "not a list at all",
			want: nil,
		},
		{
			name: "unterminated quote",
			text: `['a', 'b`,
			want: nil,
		},
		{
			name: "empty json array",
			text: `[]`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeOptions(tt.text)
			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("DecodeOptions(%q) = %v, want empty", tt.text, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeOptions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
