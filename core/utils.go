package core

import (
	"sort"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// UniqueStrings returns the sorted distinct non-empty values of all the given slices.
func UniqueStrings(slices ...[]string) []string {
	seen := make(map[string]struct{})
	for _, sl := range slices {
		for _, s := range sl {
			if s == "" {
				continue
			}
			seen[s] = struct{}{}
		}
	}
	res := make([]string, 0, len(seen))
	for s := range seen {
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}
