package projectile

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/firing-range/internal/collision"
	"github.com/Garsondee/firing-range/internal/effect"
	"github.com/Garsondee/firing-range/internal/geom"
)

// parallelThreshold is the smallest batch worth fanning out.
const parallelThreshold = 32

// Manager owns every live projectile and ticks them together. The sweep
// phase only reads the collision backend and may run in parallel; impacts
// and effects are then applied one controller at a time, in spawn order.
type Manager struct {
	Backend collision.Backend
	Env     *effect.Env

	// Parallel enables the concurrent sweep phase. The backend must not be
	// mutated while Update runs.
	Parallel bool
	Workers  int // 0 means GOMAXPROCS

	live   []*Controller
	nextID int
}

// NewManager returns an empty manager.
func NewManager(backend collision.Backend, env *effect.Env) *Manager {
	return &Manager{Backend: backend, Env: env}
}

// Spawn creates a controller for shot. Misconfigured shots come back
// already Terminated and are not tracked.
func (m *Manager) Spawn(shot *effect.Shot, pipe effect.Pipeline, rng geom.Float64er) *Controller {
	c := New(m.Backend, m.Env, shot, pipe, rng)
	if c.Done() {
		return c
	}
	m.nextID++
	c.id = m.nextID
	m.live = append(m.live, c)
	return c
}

// Update advances every projectile by dt and drops terminated ones.
func (m *Manager) Update(ctx context.Context, dt float64) error {
	if len(m.live) == 0 {
		return nil
	}
	plans := make([]step, len(m.live))
	if m.Parallel && len(m.live) >= parallelThreshold {
		g, gctx := errgroup.WithContext(ctx)
		workers := m.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		g.SetLimit(workers)
		for i, c := range m.live {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				plans[i] = c.plan(dt)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, c := range m.live {
			plans[i] = c.plan(dt)
		}
	}

	for i, c := range m.live {
		c.commit(plans[i], dt)
	}

	kept := m.live[:0]
	for _, c := range m.live {
		if !c.Done() {
			kept = append(kept, c)
		}
	}
	clear(m.live[len(kept):])
	m.live = kept
	return nil
}

// Live returns the tracked projectiles, including fading ones.
func (m *Manager) Live() []*Controller { return m.live }

// Len returns the number of tracked projectiles.
func (m *Manager) Len() int { return len(m.live) }

// Flying counts projectiles still in the air.
func (m *Manager) Flying() int {
	n := 0
	for _, c := range m.live {
		if c.State() == Flying {
			n++
		}
	}
	return n
}
