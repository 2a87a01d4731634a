package matcher

import (
	"bytes"

	"github.com/segmentio/encoding/json"
)

// Verdict is the outcome of checking one message.
type Verdict struct {
	Phishing bool `json:"phishing" jsonschema:"true when a URL in the message contains a blacklisted domain"`
	// Domain holds the matching URL as it appeared in the message, not the
	// blacklisted domain it contained. Nil unless Phishing is set.
	Domain *string `json:"domain" jsonschema:"the first URL that matched, or null"`
}

// Unmatched returns the verdict reported when nothing matched.
func Unmatched() Verdict {
	return Verdict{}
}

// Matched returns a phishing verdict for the given URL.
func Matched(url string) Verdict {
	return Verdict{Phishing: true, Domain: &url}
}

// unmatchedPayload is the serialized form of Unmatched.
var unmatchedPayload = []byte(`{"phishing":false,"domain":null}`)

// Marshal encodes v as compact JSON with a fixed field order. URLs are
// written as-is, without HTML escaping of '&', '<' or '>'.
func (v Verdict) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Payload is Marshal that falls back to the unmatched payload instead of
// failing, so callers across the boundary always get a well-formed verdict.
func (v Verdict) Payload() []byte {
	b, err := v.Marshal()
	if err != nil {
		return bytes.Clone(unmatchedPayload)
	}
	return b
}
