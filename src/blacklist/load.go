package blacklist

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/segmentio/encoding/json"
)

var (
	// ErrRead is matched by load errors caused by the file being missing,
	// unreadable, or not valid UTF-8.
	ErrRead = errors.New("read failed")
	// ErrParse is matched by load errors caused by content that is not a
	// JSON array of strings.
	ErrParse = errors.New("parse failed")
)

// LoadError describes a failed Load. Use errors.Is with ErrRead or ErrParse
// to tell the two apart.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading blacklist %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Load reads the file at path and parses it as a JSON array of domain
// strings. Nothing beyond "array of strings" is validated.
func Load(path string) (*Blacklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrRead, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Kind: ErrRead, Err: errors.New("file is not valid UTF-8")}
	}

	domains, err := parseDomains(data)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrParse, Err: err}
	}

	bl := New(domains...)
	bl.Source = path
	return bl, nil
}

// parseDomains decodes into an untyped value first so that a top-level null
// or a null element is rejected instead of silently becoming empty.
func parseDomains(data []byte) ([]string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	// The decoder turns unpaired surrogates into U+FFFD, which would not be
	// the domain the file names.
	if err := checkSurrogates(data); err != nil {
		return nil, err
	}

	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON array, got %s", jsonKind(v))
	}

	domains := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a string, got %s", i, jsonKind(item))
		}
		domains = append(domains, s)
	}
	return domains, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}

// checkSurrogates reports a \uXXXX escape in a JSON string that encodes half
// of a UTF-16 surrogate pair without its other half. data must already be
// valid JSON.
func checkSurrogates(data []byte) error {
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if !inString {
			inString = c == '"'
			continue
		}
		switch c {
		case '"':
			inString = false
		case '\\':
			i++
			if i >= len(data) || data[i] != 'u' {
				continue
			}
			start := i - 1
			r, ok := hexEscape(data, i+1)
			if !ok {
				continue
			}
			i += 4
			switch {
			case r >= 0xd800 && r <= 0xdbff:
				if i+2 < len(data) && data[i+1] == '\\' && data[i+2] == 'u' {
					if lo, ok := hexEscape(data, i+3); ok && lo >= 0xdc00 && lo <= 0xdfff {
						i += 6
						continue
					}
				}
				return fmt.Errorf("unpaired surrogate escape at offset %d", start)
			case r >= 0xdc00 && r <= 0xdfff:
				return fmt.Errorf("unpaired surrogate escape at offset %d", start)
			}
		}
	}
	return nil
}

func hexEscape(data []byte, at int) (rune, bool) {
	if at+4 > len(data) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(data[at:at+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
