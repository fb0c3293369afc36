package budget_test

import (
	"testing"

	"artsync/internal/budget"
)

func TestTakeClampsToRemaining(t *testing.T) {
	b := budget.New(5)

	// Two collections with 3 and 4 pending items: the first takes 3, the
	// second only gets the 2 that remain.
	if got := b.Take(3); got != 3 {
		t.Fatalf("first take: got %d want 3", got)
	}
	if got := b.Take(4); got != 2 {
		t.Fatalf("second take: got %d want 2", got)
	}
	if b.Remaining() != 0 {
		t.Fatalf("remaining: got %d want 0", b.Remaining())
	}
	if !b.Exhausted() {
		t.Fatal("expected budget exhausted")
	}
	if got := b.Take(1); got != 0 {
		t.Fatalf("take after exhaustion: got %d want 0", got)
	}
}

func TestNewClampsNegative(t *testing.T) {
	b := budget.New(-3)
	if b.Remaining() != 0 {
		t.Fatalf("remaining: got %d want 0", b.Remaining())
	}
}

func TestTakeNegativeIsNoop(t *testing.T) {
	b := budget.New(2)
	if got := b.Take(-1); got != 0 {
		t.Fatalf("negative take: got %d want 0", got)
	}
	if b.Remaining() != 2 {
		t.Fatalf("remaining changed: %d", b.Remaining())
	}
}
