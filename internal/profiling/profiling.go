package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Process-wide timing totals for generation stages. Recording never affects
// generated values.

// Stat is the accumulated cost of one named stage.
type Stat struct {
	Calls int
	Total time.Duration
}

// Mean returns the average duration per call.
func (s Stat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("terrain.Generate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Calls++
		s.Total += d
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of current totals.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// TopN formats the n most expensive stages by total time.
// Example: "terrain.Generate:12.4ms/32, terrain.Erode:3.1ms/4"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		stat Stat
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].stat.Total != list[j].stat.Total {
			return list[i].stat.Total > list[j].stat.Total
		}
		return list[i].name < list[j].name
	})
	n = max(0, min(n, len(list)))
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].stat.Total.Microseconds()) / 1000.0
		parts = append(parts, list[i].name+":"+formatMs(ms)+"/"+strconv.Itoa(list[i].stat.Calls))
	}
	return strings.Join(parts, ", ")
}

func formatMs(ms float64) string {
	// one decimal; drop ".0"
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}
