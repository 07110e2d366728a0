package svc

import (
	"net/http"
	"net/url"
	"testing"
)

func newExtractor(rawQuery string) *ParameterExtractor {
	req := &http.Request{URL: &url.URL{RawQuery: rawQuery}, Method: http.MethodGet}
	return NewParameterExtractor(req)
}

func TestGetBoolOnlyLiteralTrue(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", false},
		{"TRUE", false},
		{"True", false},
		{"", false},
	}
	for _, tc := range cases {
		pe := newExtractor("hidebroken=" + tc.value)
		if got := pe.GetBool("hidebroken", false); got != tc.want {
			t.Errorf("GetBool(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestGetBoolAbsentUsesDefault(t *testing.T) {
	pe := newExtractor("")
	if got := pe.GetBool("reverse", true); got != true {
		t.Errorf("GetBool absent = %v, want default true", got)
	}
}

func TestGetNumberUnparsableUsesDefault(t *testing.T) {
	pe := newExtractor("limit=notanumber")
	if got := pe.GetNumber("limit", 999999); got != 999999 {
		t.Errorf("GetNumber unparsable = %d, want default 999999", got)
	}
}

func TestGetTagListTrimsAndDropsEmpty(t *testing.T) {
	pe := newExtractor("tagList=" + url.QueryEscape(" rock , , pop ,jazz"))
	got := pe.GetTagList()
	want := []string{"rock", "pop", "jazz"}
	if len(got) != len(want) {
		t.Fatalf("GetTagList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetTagList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
