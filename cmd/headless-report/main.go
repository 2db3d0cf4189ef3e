package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/firing-range/internal/combatlog"
	"github.com/Garsondee/firing-range/internal/profile"
	"github.com/Garsondee/firing-range/internal/scenario"
)

type runStats struct {
	runIndex int
	seed     int64
	script   string
	ticks    int

	firstHitTick  int
	firstKillTick int

	pulls       int
	drops       int
	hits        int
	guardHits   int
	spawned     int
	impacts     int
	expired     int
	damageCalls int
	crits       int
	damageTotal float64
	knockbacks  int
	kills       int
	shooters    map[string]struct{}

	dummies []scenario.DummySnapshot
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scripts string
	var profiles string
	var verbose bool
	var copyOut bool
	var showLog bool
	var logFrom int
	var logTo int

	flag.IntVar(&runs, "runs", 3, "number of headless runs per scenario")
	flag.IntVar(&ticks, "ticks", 0, "ticks per run (0 = scenario default)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scripts, "scenario", "all", "comma-separated scenario names, or all")
	flag.StringVar(&profiles, "profiles", "", "weapon library JSON (built-in set when empty)")
	flag.BoolVar(&verbose, "verbose", false, "record per-segment log entries")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.BoolVar(&showLog, "log", false, "print the combat log of each scenario's first run")
	flag.IntVar(&logFrom, "log-from", 0, "first tick printed by -log")
	flag.IntVar(&logTo, "log-to", 0, "last tick printed by -log (0 = end of run)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks < 0 {
		fmt.Println("error: -ticks must be >= 0")
		return
	}
	selected, err := selectScripts(scripts)
	if err != nil {
		fmt.Printf("error: %v (supported: %s)\n", err, strings.Join(scenario.Names(), ", "))
		return
	}
	var lib *profile.Library
	if profiles != "" {
		lib, err = profile.LoadLibrary(profiles)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	var buf bytes.Buffer
	w := io.MultiWriter(os.Stdout, &buf)

	fmt.Fprintf(w, "=== Headless Firing Report ===\n")
	fmt.Fprintf(w, "scenarios=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scripts, runs, ticks, seedBase, seedStep)

	for _, s := range selected {
		all := make([]runStats, 0, runs)
		for i := 0; i < runs; i++ {
			seed := seedBase + int64(i)*seedStep
			r := build(s, seed, lib, verbose)
			n := ticks
			if n == 0 {
				n = s.Ticks
			}
			if err := r.RunTicks(context.Background(), n); err != nil {
				fmt.Fprintf(w, "error: %s run %d: %v\n", s.Name, i+1, err)
				break
			}
			stats := collect(r, s.Name, i+1, seed)
			all = append(all, stats)
			printRun(w, stats)
			if showLog && i == 0 {
				fmt.Fprintln(w, logText(r.Log, logFrom, logTo))
			}
		}
		printAggregate(w, s.Name, all)
	}

	if copyOut {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			fmt.Printf("clipboard: %v\n", err)
		} else {
			fmt.Println("(report copied to clipboard)")
		}
	}
}

func selectScripts(list string) ([]scenario.Script, error) {
	if list == "" || list == "all" {
		return scenario.Catalog(), nil
	}
	var out []scenario.Script
	for _, name := range strings.Split(list, ",") {
		s, ok := scenario.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unsupported scenario %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

func build(s scenario.Script, seed int64, lib *profile.Library, verbose bool) *scenario.Range {
	opts := []scenario.Option{scenario.WithSeed(seed), scenario.WithVerbose(verbose)}
	if lib != nil {
		opts = append(opts, scenario.WithLibrary(lib))
	}
	return s.Build(opts...)
}

func collect(r *scenario.Range, script string, runIndex int, seed int64) runStats {
	log := r.Log
	entries := log.Entries()
	shooters := map[string]struct{}{}
	for _, e := range log.Filter(combatlog.CatFire, "pull") {
		shooters[e.Shooter] = struct{}{}
	}
	crits := 0
	for _, e := range log.Filter(combatlog.CatEffect, "damage") {
		if strings.Contains(e.Value, "(crit)") {
			crits++
		}
	}
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		script:        script,
		ticks:         r.CurrentTick(),
		firstHitTick:  firstTick(entries, combatlog.CatEffect, "damage", ""),
		firstKillTick: firstTick(entries, combatlog.CatEffect, "kill", ""),
		pulls:         log.Count(combatlog.CatFire, "pull"),
		drops:         log.Count(combatlog.CatConfig, "drop"),
		hits:          log.Count(combatlog.CatHitscan, "hit"),
		guardHits:     log.Count(combatlog.CatHitscan, "guard_hit"),
		spawned:       log.Count(combatlog.CatProjectile, "spawn"),
		impacts:       log.Count(combatlog.CatProjectile, "impact"),
		expired:       log.Count(combatlog.CatProjectile, "expire"),
		damageCalls:   log.Count(combatlog.CatEffect, "damage"),
		crits:         crits,
		damageTotal:   log.Sum(combatlog.CatEffect, "damage"),
		knockbacks:    log.Count(combatlog.CatEffect, "knockback"),
		kills:         log.Count(combatlog.CatEffect, "kill"),
		shooters:      shooters,
		dummies:       r.Snapshot().Dummies,
	}
}

// logText prints the whole log, or only ticks in [from, to] when either
// bound is set.
func logText(log *combatlog.Log, from, to int) string {
	if from <= 0 && to <= 0 {
		return log.Format()
	}
	if to <= 0 {
		to = log.Tick()
	}
	return log.FormatRange(from, to)
}

func firstTick(entries []combatlog.Entry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- %s run %d (seed=%d, ticks=%d) ---\n", rs.script, rs.runIndex, rs.seed, rs.ticks)
	fmt.Fprintf(w, "phase_markers: first_damage=%d first_kill=%d\n", rs.firstHitTick, rs.firstKillTick)
	fmt.Fprintf(w, "fire: pulls=%d drops=%d shooters=%s\n", rs.pulls, rs.drops, joinSet(rs.shooters))
	fmt.Fprintf(w, "delivery: hitscan_hits=%d guard_hits=%d projectiles=%d impacts=%d expired=%d\n",
		rs.hits, rs.guardHits, rs.spawned, rs.impacts, rs.expired)
	fmt.Fprintf(w, "effects: damage_calls=%d crits=%d damage_total=%.0f knockbacks=%d kills=%d\n",
		rs.damageCalls, rs.crits, rs.damageTotal, rs.knockbacks, rs.kills)
	for _, d := range rs.dummies {
		fmt.Fprintf(w, "  %-10s %-7s hp=%d/%d hits=%d moved=%.2fm\n", d.Name, d.Kind, d.HP, d.MaxHP, d.Hits, d.Moved)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, script string, all []runStats) {
	totalPulls := 0
	totalHits := 0
	totalImpacts := 0
	totalDamageCalls := 0
	totalCrits := 0
	totalKills := 0
	totalDamage := 0.0

	hitTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	shootersGlobal := map[string]struct{}{}

	type dummyAgg struct {
		hits  int
		taken int
		moved float64
		dead  int
	}
	aggs := map[string]*dummyAgg{}

	for _, rs := range all {
		totalPulls += rs.pulls
		totalHits += rs.hits
		totalImpacts += rs.impacts
		totalDamageCalls += rs.damageCalls
		totalCrits += rs.crits
		totalKills += rs.kills
		totalDamage += rs.damageTotal
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		for s := range rs.shooters {
			shootersGlobal[s] = struct{}{}
		}
		for _, d := range rs.dummies {
			ag, ok := aggs[d.Name]
			if !ok {
				ag = &dummyAgg{}
				aggs[d.Name] = ag
			}
			ag.hits += d.Hits
			ag.taken += d.MaxHP - d.HP
			ag.moved += d.Moved
			if d.HP == 0 {
				ag.dead++
			}
		}
	}

	n := len(all)
	fmt.Fprintf(w, "=== Aggregate: %s ===\n", script)
	fmt.Fprintf(w, "runs=%d\n", n)
	fmt.Fprintf(w, "avg_per_run: pulls=%.1f hitscan_hits=%.1f impacts=%.1f damage_calls=%.1f damage=%.1f kills=%.1f\n",
		avg(totalPulls, n), avg(totalHits, n), avg(totalImpacts, n), avg(totalDamageCalls, n), avgF(totalDamage, n), avg(totalKills, n))
	critRate := 0.0
	if totalDamageCalls > 0 {
		critRate = float64(totalCrits) / float64(totalDamageCalls) * 100
	}
	fmt.Fprintf(w, "crit_rate=%.1f%%\n", critRate)
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_damage=%s first_kill=%s\n", avgTickString(hitTicks), avgTickString(killTicks))
	fmt.Fprintf(w, "shooters=%d [%s]\n", len(shootersGlobal), joinSet(shootersGlobal))

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ag := aggs[name]
		fmt.Fprintf(w, "  %-10s avg_hits=%.1f avg_taken=%.1f avg_moved=%.2fm killed=%d/%d\n",
			name, avg(ag.hits, n), avg(ag.taken, n), avgF(ag.moved, n), ag.dead, n)
	}
	fmt.Fprintln(w)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgF(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
