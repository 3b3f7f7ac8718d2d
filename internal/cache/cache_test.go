package cache

import (
	"errors"
	"testing"
	"time"
)

func TestDo_MemoizesWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := c.Do("k", 30*time.Second, compute)
	if err != nil || v.(int) != 1 {
		t.Fatalf("first Do = %v, %v", v, err)
	}

	now = now.Add(10 * time.Second)
	v, _ = c.Do("k", 30*time.Second, compute)
	if v.(int) != 1 || calls != 1 {
		t.Errorf("within TTL: v = %v, calls = %d, want cached value", v, calls)
	}

	now = now.Add(25 * time.Second)
	v, _ = c.Do("k", 30*time.Second, compute)
	if v.(int) != 2 || calls != 2 {
		t.Errorf("after TTL: v = %v, calls = %d, want recompute", v, calls)
	}
}

func TestDo_KeysAreIndependent(t *testing.T) {
	c := New()
	_, _ = c.Do("a", time.Minute, func() (any, error) { return "A", nil })
	v, _ := c.Do("b", time.Minute, func() (any, error) { return "B", nil })
	if v.(string) != "B" {
		t.Errorf("v = %v", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestDo_ErrorsNotCached(t *testing.T) {
	c := New()
	wantErr := errors.New("boom")

	if _, err := c.Do("k", time.Minute, func() (any, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}

	v, err := c.Do("k", time.Minute, func() (any, error) { return 42, nil })
	if err != nil || v.(int) != 42 {
		t.Errorf("after error: v = %v, err = %v, want recompute", v, err)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := New()
	_, _ = c.Do("a", time.Minute, func() (any, error) { return 1, nil })
	_, _ = c.Do("b", time.Minute, func() (any, error) { return 2, nil })

	c.Invalidate("a")
	v, _ := c.Do("a", time.Minute, func() (any, error) { return 10, nil })
	if v.(int) != 10 {
		t.Errorf("after invalidate: v = %v, want recompute", v)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}
