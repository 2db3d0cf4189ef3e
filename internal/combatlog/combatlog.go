// Package combatlog records structured firing events for tests, the headless
// report and the on-screen shot panel.
package combatlog

import (
	"fmt"
	"sort"
	"strings"
)

// Categories used by the firing code.
const (
	CatFire       = "fire"
	CatHitscan    = "hitscan"
	CatProjectile = "projectile"
	CatEffect     = "effect"
	CatConfig     = "config"
)

// Entry is one recorded event.
type Entry struct {
	Tick     int
	Shooter  string  // weapon holder label, or "--" for global events
	Category string  // fire, hitscan, projectile, effect, config
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P1   hitscan   hit              dummy_a @ 12.4m
func (e Entry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-10s %-16s %s",
		e.Tick, e.Shooter, e.Category, e.Key, e.Value)
}

// Log collects structured events. It is unbounded; the UI keeps its own
// short ring of recent shots. A nil *Log records nothing.
type Log struct {
	entries []Entry
	tick    int
	verbose bool
}

// New creates a Log. If verbose is true, per-segment walk entries are also
// recorded.
func New(verbose bool) *Log {
	return &Log{verbose: verbose}
}

// SetTick sets the tick stamped on subsequent entries.
func (l *Log) SetTick(tick int) {
	if l == nil {
		return
	}
	l.tick = tick
}

// Tick returns the current tick.
func (l *Log) Tick() int {
	if l == nil {
		return 0
	}
	return l.tick
}

// Add records a new entry at the current tick.
func (l *Log) Add(shooter, category, key, value string, numVal float64) {
	if l == nil {
		return
	}
	if shooter == "" {
		shooter = "--"
	}
	l.entries = append(l.entries, Entry{
		Tick:     l.tick,
		Shooter:  shooter,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *Log) AddVerbose(shooter, category, key, value string, numVal float64) {
	if l == nil || !l.verbose {
		return
	}
	l.Add(shooter, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *Log) Filter(category, key string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterShooter returns entries for a specific shooter label.
func (l *Log) FilterShooter(label string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Shooter == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (l *Log) FilterTickRange(fromTick, toTick int) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *Log) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Sum adds up NumVal over entries matching category and key.
func (l *Log) Sum(category, key string) float64 {
	total := 0.0
	for _, e := range l.Filter(category, key) {
		total += e.NumVal
	}
	return total
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *Log) LastOf(category, key string) (Entry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *Log) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (l *Log) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (l *Log) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range l.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns per category/key counts, sorted, one per line.
func (l *Log) Summary() string {
	counts := map[string]int{}
	for _, e := range l.Entries() {
		counts[e.Category+"/"+e.Key]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", l.Tick())
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-28s %d\n", k, counts[k])
	}
	return sb.String()
}
