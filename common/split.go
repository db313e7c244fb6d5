package common

import "strings"

// RightSplit splits s around the last occurrence of sep. Without sep, s is returned as the only element.
func RightSplit(s string, sep string) []string {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return []string{s}
	}

	return []string{s[:i], s[i+len(sep):]}
}
