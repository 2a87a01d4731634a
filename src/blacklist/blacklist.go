// Package blacklist loads and holds the set of known phishing domains that
// messages are checked against.
package blacklist

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Blacklist is an immutable set of blacklisted domains. Domains are kept
// verbatim as they appeared in the source file.
type Blacklist struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time

	domains map[string]struct{}
}

// New builds a Blacklist from the given domains. Duplicates collapse.
func New(domains ...string) *Blacklist {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[d] = struct{}{}
	}
	return &Blacklist{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
		domains:  set,
	}
}

// Len returns the number of distinct domains.
func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.domains)
}

// Contains reports whether domain is in the set (exact comparison).
func (b *Blacklist) Contains(domain string) bool {
	if b == nil {
		return false
	}
	_, ok := b.domains[domain]
	return ok
}

// Match reports whether any blacklisted domain occurs anywhere in candidate.
// Matching is case-sensitive and unanchored: "evil.example" matches
// "http://notevil.example/" and "https://safe.example/?r=evil.example".
func (b *Blacklist) Match(candidate string) bool {
	if b == nil {
		return false
	}
	for d := range b.domains {
		if strings.Contains(candidate, d) {
			return true
		}
	}
	return false
}
