// Package matcher decides whether a message links to a blacklisted domain.
package matcher

import (
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/blacklist"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/extract"
)

// Check scans text for URLs and reports the first one that contains a
// blacklisted domain. Later URLs are not looked at once one matches.
// A nil blacklist matches nothing.
func Check(bl *blacklist.Blacklist, text string) Verdict {
	if bl == nil {
		return Unmatched()
	}
	for u := range extract.URLs(text) {
		if bl.Match(u) {
			return Matched(u)
		}
	}
	return Unmatched()
}
