package blacklist

import "sync/atomic"

// Store holds the currently installed Blacklist. Readers always observe
// either the previous or the new Blacklist in full.
//
// The zero value is ready to use and has nothing installed.
type Store struct {
	value atomic.Pointer[Blacklist]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the installed Blacklist, or nil if nothing has been
// installed yet.
func (s *Store) Current() *Blacklist {
	return s.value.Load()
}

// Install replaces the current Blacklist wholesale.
func (s *Store) Install(bl *Blacklist) {
	s.value.Store(bl)
}

// LoadAndInstall loads path and installs the result. On error the
// previously installed Blacklist stays in place.
func (s *Store) LoadAndInstall(path string) (*Blacklist, error) {
	bl, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.Install(bl)
	return bl, nil
}
