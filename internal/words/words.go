// Package words counts whitespace-delimited tokens for word-range rules.
package words

import "strings"

// Count returns the number of whitespace-separated tokens in input. Counting
// is locale-insensitive: any Unicode whitespace separates tokens, punctuation
// does not.
func Count(input string) int {
	return len(strings.Fields(input))
}
