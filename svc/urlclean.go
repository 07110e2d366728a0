package svc

import "strings"

// CleanURL strips the query string, then drops the high-cardinality
// trailing segment on endpoints that embed a UUID or search string, so
// AccessCounter and the access log don't explode with one entry per
// distinct station UUID.
//
// Algorithm, deterministic:
//  1. Drop everything from the first '?'.
//  2. Count '/' in the remainder.
//  3. count==4 -> drop everything after the last '/'.
//  4. count==3 -> keep as-is if the path contains "/stations/", else drop
//     after the last '/'.
//  5. Otherwise keep as-is.
func CleanURL(rawURL string) string {
	path := rawURL
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}

	slashes := strings.Count(path, "/")
	switch {
	case slashes == 4:
		return path[:strings.LastIndexByte(path, '/')]
	case slashes == 3:
		if strings.Contains(path, "/stations/") {
			return path
		}
		return path[:strings.LastIndexByte(path, '/')]
	default:
		return path
	}
}
