package svc

import "testing"

func TestCleanURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"four slashes drops trailing uuid", "/json/stations/byuuid/XXXX", "/json/stations/byuuid"},
		{"three slashes under /stations/ kept", "/json/stations/topvote", "/json/stations/topvote"},
		{"three slashes elsewhere trimmed", "/json/vote/YYYY", "/json/vote"},
		{"query string dropped first", "/json/vote/YYYY?foo=bar", "/json/vote"},
		{"two slashes kept as-is", "/json/countries", "/json/countries"},
		{"root kept as-is", "/", "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanURL(tc.in); got != tc.want {
				t.Errorf("CleanURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
