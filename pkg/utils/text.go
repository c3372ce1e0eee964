// Package utils provides shared utilities for text, math, and logging.
package utils

import "strings"

// missingToken is the string form of a missing value, matching how the
// upstream cleaning step stringifies nulls. It tokenizes to one word.
const missingToken = "nan"

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// WordCount returns the whitespace-token count of s. A missing (empty) value
// counts as the single token "nan".
func WordCount(s string) int {
	if s == "" {
		s = missingToken
	}
	return len(strings.Fields(s))
}
