package storage

import (
	"reflect"
	"testing"
)

func TestEncodeListFiltersBlanks(t *testing.T) {
	got := EncodeList([]string{"200g flour", "", "  ", "2 eggs"})
	if got != `["200g flour","2 eggs"]` {
		t.Errorf("EncodeList = %q", got)
	}
}

func TestEncodeListEmpty(t *testing.T) {
	if got := EncodeList(nil); got != "[]" {
		t.Errorf("EncodeList(nil) = %q, want []", got)
	}
	if got := EncodeList([]string{" ", ""}); got != "[]" {
		t.Errorf("EncodeList(blanks) = %q, want []", got)
	}
}

func TestDecodeList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"round trip", `["Mix","Bake"]`, []string{"Mix", "Bake"}},
		{"empty array", `[]`, []string{}},
		{"blank input", "", []string{}},
		{"whitespace input", "  \n", []string{}},
		{"json null", `null`, []string{}},
		{"plain text fallback", "garam secukupnya", []string{"garam secukupnya"}},
		{"malformed json fallback", `["Mix",`, []string{`["Mix",`}},
		{"wrong json type fallback", `{"a":1}`, []string{`{"a":1}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeList(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DecodeList(%q) = %#v, want %#v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestListRoundTrip(t *testing.T) {
	items := []string{"200g flour", "2 eggs"}
	if got := DecodeList(EncodeList(items)); !reflect.DeepEqual(got, items) {
		t.Errorf("Round trip = %#v, want %#v", got, items)
	}
}
