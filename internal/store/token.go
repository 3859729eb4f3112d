// Package store holds generated presentations between the generate
// call and the download, plus the persistent generation history.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Download is one finished presentation awaiting pickup.
type Download struct {
	Data     []byte
	Filename string
}

// TokenStore maps one-time download tokens to in-memory presentations.
// Entries live until their first download and never touch disk.
type TokenStore struct {
	mu      sync.Mutex
	entries map[string]Download
}

func NewTokenStore() *TokenStore {
	return &TokenStore{entries: make(map[string]Download)}
}

// Put stores a presentation and returns its download token.
func (s *TokenStore) Put(data []byte, filename string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.entries[token] = Download{Data: data, Filename: filename}
	s.mu.Unlock()
	return token
}

// Take returns and removes the entry for a token. The second return is
// false for unknown or already-downloaded tokens.
func (s *TokenStore) Take(token string) (Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if ok {
		delete(s.entries, token)
	}
	return entry, ok
}

// Len reports the number of pending downloads.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
