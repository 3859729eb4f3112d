package store

import (
	"testing"
)

func TestTokenStoreSingleUse(t *testing.T) {
	s := NewTokenStore()
	token := s.Put([]byte("pptx bytes"), "deck.pptx")

	entry, ok := s.Take(token)
	if !ok {
		t.Fatal("first Take failed")
	}
	if entry.Filename != "deck.pptx" || string(entry.Data) != "pptx bytes" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	if _, ok := s.Take(token); ok {
		t.Error("second Take succeeded, token should be single-use")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestTokenStoreDistinctTokens(t *testing.T) {
	s := NewTokenStore()
	a := s.Put([]byte("a"), "a.pptx")
	b := s.Put([]byte("b"), "b.pptx")
	if a == b {
		t.Fatal("two Puts returned the same token")
	}
	if entry, _ := s.Take(b); string(entry.Data) != "b" {
		t.Errorf("token b returned %q", entry.Data)
	}
	if entry, _ := s.Take(a); string(entry.Data) != "a" {
		t.Errorf("token a returned %q", entry.Data)
	}
}

func TestHistoryRecordAndRecent(t *testing.T) {
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	h := NewHistory(db)

	for i, title := range []string{"First Deck", "Second Deck", "Third Deck"} {
		err := h.Record(&Generation{Title: title, Filename: title + ".pptx", Slides: i + 2})
		if err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	got, err := h.Recent(2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Title != "Third Deck" || got[1].Title != "Second Deck" {
		t.Errorf("unexpected order: %s, %s", got[0].Title, got[1].Title)
	}
}
