// Package extract finds URL-shaped substrings in free text. It is a cheap
// lexical scan, not a URL parser: anything from "http://" or "https://" up
// to the next whitespace character counts.
package extract

import (
	"iter"
	"regexp"
)

// urlPattern stops at any Unicode White_Space character, not only the
// ASCII ones covered by \s.
var urlPattern = regexp.MustCompile(`https?://[^\s\v\x{85}\p{Z}]+`)

// URLs returns the candidate URLs in text, left to right. Matches are found
// lazily as the sequence is consumed, and ranging over it again rescans
// from the start.
func URLs(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for {
			loc := urlPattern.FindStringIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[0]:loc[1]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// All collects every candidate URL in text.
func All(text string) []string {
	var urls []string
	for u := range URLs(text) {
		urls = append(urls, u)
	}
	return urls
}
