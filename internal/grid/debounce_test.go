package grid

import (
	"testing"
	"time"
)

func TestDebouncerOnlyLastTokenFires(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	first := d.Trigger()
	second := d.Trigger()
	third := d.Trigger()
	if d.Fire(first) {
		t.Fatal("expected superseded token not to fire")
	}
	if d.Fire(second) {
		t.Fatal("expected superseded token not to fire")
	}
	if !d.Fire(third) {
		t.Fatal("expected final token to fire")
	}
}

func TestDebouncerDestroyCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	tok := d.Trigger()
	d.Destroy()
	if d.Fire(tok) {
		t.Fatal("expected no fire after destroy")
	}
	if post := d.Trigger(); d.Fire(post) {
		t.Fatal("expected triggers after destroy to be no-ops")
	}
}

func TestDebouncerZeroTokenNeverFires(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	if d.Fire(Token{}) {
		t.Fatal("expected zero token not to fire")
	}
}

func TestDebouncerDefaultInterval(t *testing.T) {
	if got := NewDebouncer(0).Interval(); got != DefaultDebounceInterval {
		t.Fatalf("expected default interval, got %v", got)
	}
	if got := NewDebouncer(time.Second).Interval(); got != time.Second {
		t.Fatalf("expected configured interval, got %v", got)
	}
}
