package effect

import (
	"github.com/Garsondee/firing-range/internal/geom"
	"github.com/Garsondee/firing-range/internal/target"
)

// agentPush is one knocked-back agent moving from start to end. The agent
// is disabled for the whole window and re-enabled when it completes.
type agentPush struct {
	id       target.ID
	agent    target.Agent
	start    geom.Vec3
	end      geom.Vec3
	elapsed  float64
	duration float64
}

// Tasks drives agent knockback from the regular tick instead of a suspended
// routine. A task is dropped early when its target leaves the registry.
type Tasks struct {
	reg    *target.Registry
	active []*agentPush
}

// NewTasks returns an empty scheduler bound to reg.
func NewTasks(reg *target.Registry) *Tasks {
	return &Tasks{reg: reg}
}

// Start begins pushing agent by offset over duration seconds. A push already
// running on the same target is replaced, continuing from where the agent
// currently stands.
func (t *Tasks) Start(id target.ID, agent target.Agent, offset geom.Vec3, duration float64) {
	if agent == nil || !offset.IsFinite() {
		return
	}
	t.drop(id)
	agent.Disable()
	from := agent.Position()
	if duration <= 0 {
		agent.SetPosition(from.Add(offset))
		agent.Enable()
		return
	}
	t.active = append(t.active, &agentPush{
		id:       id,
		agent:    agent,
		start:    from,
		end:      from.Add(offset),
		duration: duration,
	})
}

// Update advances every push by dt.
func (t *Tasks) Update(dt float64) {
	if dt <= 0 {
		return
	}
	kept := t.active[:0]
	for _, p := range t.active {
		if !t.alive(p.id) {
			continue
		}
		p.elapsed += dt
		u := geom.Clamp01(p.elapsed / p.duration)
		p.agent.SetPosition(p.start.Lerp(p.end, u))
		if u >= 1 {
			p.agent.Enable()
			continue
		}
		kept = append(kept, p)
	}
	t.active = kept
}

// Cancel stops a push early and hands the agent back to navigation.
func (t *Tasks) Cancel(id target.ID) {
	for _, p := range t.active {
		if p.id == id && t.alive(id) {
			p.agent.Enable()
		}
	}
	t.drop(id)
}

// Active returns the number of running pushes.
func (t *Tasks) Active() int { return len(t.active) }

// Running reports whether a push is in flight for id.
func (t *Tasks) Running(id target.ID) bool {
	for _, p := range t.active {
		if p.id == id {
			return true
		}
	}
	return false
}

func (t *Tasks) alive(id target.ID) bool {
	if t.reg == nil {
		return true
	}
	_, ok := t.reg.Get(id)
	return ok
}

func (t *Tasks) drop(id target.ID) {
	kept := t.active[:0]
	for _, p := range t.active {
		if p.id != id {
			kept = append(kept, p)
		}
	}
	t.active = kept
}
