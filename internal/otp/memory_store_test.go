package otp

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := Record{
		Phone:     "9123456789",
		Code:      "123456",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "9123456789")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Code != "123456" {
		t.Errorf("code = %q, want 123456", got.Code)
	}

	if err := s.Delete(ctx, "9123456789"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "9123456789"); ok {
		t.Error("record still present after Delete")
	}
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := Record{Phone: "9123456789", Code: "111111", ExpiresAt: time.Now().Add(time.Minute)}
	second := Record{Phone: "9123456789", Code: "222222", ExpiresAt: time.Now().Add(time.Minute)}

	_ = s.Put(ctx, first)
	_ = s.Put(ctx, second)

	got, ok, _ := s.Get(ctx, "9123456789")
	if !ok || got.Code != "222222" {
		t.Fatalf("got %+v, want the second record", got)
	}
}

func TestMemoryStore_ExpiredRecordSurvivesUntilGrace(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Expired five minutes ago: still visible so verification can report
	// "expired" rather than "not requested".
	rec := Record{Phone: "9123456789", Code: "123456", ExpiresAt: time.Now().Add(-5 * time.Minute)}
	_ = s.Put(ctx, rec)

	if _, ok, _ := s.Get(ctx, "9123456789"); !ok {
		t.Fatal("record inside the grace period should be visible")
	}

	// Past the grace bound the record is garbage-collected.
	old := Record{Phone: "8765432109", Code: "654321", ExpiresAt: time.Now().Add(-evictionGrace - time.Minute)}
	_ = s.Put(ctx, old)

	if _, ok, _ := s.Get(ctx, "8765432109"); ok {
		t.Fatal("record past the grace period should be evicted")
	}
}

func TestMemoryStore_MissingPhone(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get(context.Background(), "9999999999")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected no record")
	}
}
