// Package boundary adapts the matcher to callers on the other side of a
// foreign-function interface: raw byte input, a synchronous notification
// callback, and result buffers with an explicit release.
//
// Ownership contract: every *Buffer returned by Check belongs to the caller
// and must be passed to Release exactly once. A released Buffer must not be
// read again. Releasing nil is a no-op.
package boundary

import (
	"log/slog"
	"unicode/utf8"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/blacklist"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/matcher"
)

// Notifier receives the serialized verdict of a check. The payload is only
// valid for the duration of the call and must not be retained.
type Notifier func(payload []byte)

// Buffer is a caller-owned copy of a serialized verdict.
type Buffer struct {
	data []byte
}

// Bytes returns the serialized verdict, or nil once the buffer is released.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

func (b *Buffer) String() string { return string(b.Bytes()) }

// Adapter serves load, check and release requests against a Store.
type Adapter struct {
	store  *blacklist.Store
	logger *slog.Logger
	issued Ledger[*Buffer]
}

// New creates an Adapter reading blacklists from store.
func New(store *blacklist.Store, logger *slog.Logger) *Adapter {
	return &Adapter{
		store:  store,
		logger: logger.With("area", "boundary"),
	}
}

// Store returns the store backing the adapter.
func (a *Adapter) Store() *blacklist.Store { return a.store }

// Load reads the blacklist file named by rawPath and installs it. It
// returns false, leaving the current blacklist in place, when the path is
// not valid UTF-8 or the file cannot be read or parsed.
func (a *Adapter) Load(rawPath []byte) bool {
	if !utf8.Valid(rawPath) {
		a.logger.Error("could not convert path to string", "path", string(rawPath))
		return false
	}
	path := string(rawPath)

	a.logger.Info("initializing domains", "path", path)
	bl, err := a.store.LoadAndInstall(path)
	if err != nil {
		a.logger.Error("could not load domains from file", "path", path, "err", err)
		return false
	}

	a.logger.Info("domains loaded", "path", path, "domains", bl.Len(), "id", bl.ID)
	return true
}

// Check matches the message in raw against the installed blacklist, calls
// notify once with the serialized verdict, then returns an independent copy
// for the caller to own. Undecodable input and a missing blacklist both
// yield an unmatched verdict.
//
// notify always runs before Check returns. A nil notify is skipped.
func (a *Adapter) Check(raw []byte, notify Notifier) *Buffer {
	verdict := matcher.Unmatched()

	switch bl := a.store.Current(); {
	case !utf8.Valid(raw):
		a.logger.Debug("message is not valid utf-8, skipping match", "len", len(raw))
	case bl == nil:
		a.logger.Debug("no blacklist installed, skipping match")
	default:
		verdict = matcher.Check(bl, string(raw))
	}

	payload := verdict.Payload()
	if verdict.Phishing {
		a.logger.Info("phishing url detected", "url", *verdict.Domain)
	}

	if notify != nil {
		notify(payload)
	}

	buf := &Buffer{data: append([]byte(nil), payload...)}
	a.issued.Track(buf)
	return buf
}

// Release hands a Buffer back. Nil is ignored. Buffers that were not
// issued by this Adapter, or were already released, are logged and left
// alone.
func (a *Adapter) Release(b *Buffer) {
	if b == nil {
		return
	}
	if !a.issued.Untrack(b) {
		a.logger.Warn("release of unknown or already released buffer")
		return
	}
	b.data = nil
}

// Outstanding returns how many buffers have been issued and not released.
func (a *Adapter) Outstanding() int {
	return a.issued.Outstanding()
}
