package terrain

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoBuildsOnce(t *testing.T) {
	m := newMemo[int, string](8)
	var builds atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.get(1, func() (string, error) {
				builds.Add(1)
				return "one", nil
			})
			if err != nil || v != "one" {
				t.Errorf("get = %q, %v", v, err)
			}
		}()
	}
	wg.Wait()
	// singleflight collapses concurrent misses; later calls hit the map.
	if n := builds.Load(); n != 1 {
		t.Errorf("built %d times, want 1", n)
	}
}

func TestMemoEvicts(t *testing.T) {
	m := newMemo[int, int](3)
	dropped := 0
	m.onEvict = func(n int) { dropped += n }
	for i := 0; i < 7; i++ {
		if _, err := m.get(i, func() (int, error) { return i * i, nil }); err != nil {
			t.Fatal(err)
		}
		if m.len() > 3 {
			t.Fatalf("memo holds %d entries, limit 3", m.len())
		}
	}
	if dropped != 6 {
		t.Errorf("dropped %d entries, want 6", dropped)
	}
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	m := newMemo[string, int](4)
	boom := errors.New("boom")
	if _, err := m.get("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
	v, err := m.get("k", func() (int, error) { return 5, nil })
	if err != nil || v != 5 {
		t.Errorf("retry = %v, %v", v, err)
	}
}
