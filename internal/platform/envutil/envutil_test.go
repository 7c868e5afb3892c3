package envutil

import (
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("LINGO_TEST_INT", "7")
	if got := Int("LINGO_TEST_INT", 5); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("LINGO_TEST_INT", "seven")
	if got := Int("LINGO_TEST_INT", 5); got != 5 {
		t.Fatalf("Int (bad): want=5 got=%d", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("LINGO_TEST_DUR", "90s")
	if got := Duration("LINGO_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration: want=90s got=%s", got)
	}
	t.Setenv("LINGO_TEST_DUR", "30")
	if got := Duration("LINGO_TEST_DUR", time.Second); got != 30*time.Second {
		t.Fatalf("Duration (secs): want=30s got=%s", got)
	}
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("LINGO_TEST_BOOL", "off")
	if Bool("LINGO_TEST_BOOL", true) {
		t.Fatalf("Bool: expected false")
	}
	t.Setenv("LINGO_TEST_LIST", " a, ,b ")
	got := List("LINGO_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got %v", got)
	}
}
