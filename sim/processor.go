package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// HookPos names a point in the processor's life where hooks fire.
type HookPos struct {
	Name string
}

// HookPosTick fires once per simulated tick while a process occupies the processor,
// after the tick's unit of burst has been consumed.
var HookPosTick = &HookPos{Name: "Tick"}

// HookPosClear fires when the current process leaves the processor, whether it
// finished or was evicted.
var HookPosClear = &HookPos{Name: "Clear"}

// HookCtx carries the site information handed to a hook.
type HookCtx struct {
	Pos     *HookPos
	Process *Process // process on the processor when the hook fired
	Clock   int64
}

// HookFunc is invoked by the processor at a HookPos.
type HookFunc func(ctx HookCtx)

// HookID keys a hook registration so that its owner can remove it explicitly.
type HookID string

type hookEntry struct {
	id HookID
	fn HookFunc
}

// hookList is an ordered, keyed list of hooks. Re-registering an existing key
// replaces the function in place and keeps its position.
type hookList struct {
	entries []hookEntry
}

func (l *hookList) add(id HookID, fn HookFunc) {
	for i := range l.entries {
		if l.entries[i].id == id {
			l.entries[i].fn = fn
			return
		}
	}
	l.entries = append(l.entries, hookEntry{id: id, fn: fn})
}

func (l *hookList) remove(id HookID) bool {
	for i := range l.entries {
		if l.entries[i].id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *hookList) has(id HookID) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// invoke calls every hook registered at the time of the call. Hooks may register
// or remove hooks (including themselves) without affecting the current round.
func (l *hookList) invoke(ctx HookCtx) {
	snapshot := make([]hookEntry, len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		e.fn(ctx)
	}
}

// Processor is the simulated single execution unit shared by every scheduler
// layer of a run. At most one process is current at any instant.
//
// Thread-safety: NOT thread-safe. The simulation is single-threaded.
type Processor struct {
	current *Process
	clock   int64

	tickHooks  hookList
	clearHooks hookList
	nextHookID int
}

// NewProcessor creates an idle processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// NewHookID returns a key unique to this processor, prefixed for readability in logs.
func (c *Processor) NewHookID(prefix string) HookID {
	c.nextHookID++
	return HookID(fmt.Sprintf("%s#%d", prefix, c.nextHookID))
}

// Current returns the process on the processor, or nil when idle.
func (c *Processor) Current() *Process {
	return c.current
}

// Clock returns the tick most recently seen by Dispatch or Tick.
func (c *Processor) Clock() int64 {
	return c.clock
}

// IsIdle reports whether no process is on the processor.
func (c *Processor) IsIdle() bool {
	return c.current == nil
}

// IsOccupied reports whether a process is on the processor.
func (c *Processor) IsOccupied() bool {
	return c.current != nil
}

// IsFinished reports whether the current process has consumed its burst but has
// not been cleared yet.
func (c *Processor) IsFinished() bool {
	return c.current != nil && c.current.IsDone()
}

// Dispatch places p on the processor. Panics if the processor is occupied.
func (c *Processor) Dispatch(p *Process, clock int64) {
	if p == nil {
		panic("Dispatch: process must not be nil")
	}
	if c.current != nil {
		panic(fmt.Sprintf("Dispatch: processor already running %v, cannot dispatch %v", c.current, p))
	}
	c.clock = clock
	c.current = p
	p.State = StateRunning
	if p.FirstRun < 0 {
		p.FirstRun = clock
	}
	logrus.WithFields(logrus.Fields{"pid": p.PID, "clock": clock}).Debug("dispatch")
}

// Tick runs the current process for one unit of time and then fires the tick
// hooks. A tick on an idle processor only advances the clock.
func (c *Processor) Tick(clock int64) {
	c.clock = clock
	if c.current == nil {
		return
	}
	if c.current.BurstRemaining > 0 {
		c.current.BurstRemaining--
	}
	c.tickHooks.invoke(HookCtx{Pos: HookPosTick, Process: c.current, Clock: clock})
}

// Clear evicts and returns the current process, then fires the clear hooks.
// Panics if no process is present.
func (c *Processor) Clear() *Process {
	if c.current == nil {
		panic("Clear: no process on processor")
	}
	p := c.current
	c.current = nil
	if p.IsDone() {
		p.State = StateCompleted
	} else {
		p.State = StateReady
	}
	c.clearHooks.invoke(HookCtx{Pos: HookPosClear, Process: p, Clock: c.clock})
	return p
}

// OnTick registers fn under id for tick notifications.
func (c *Processor) OnTick(id HookID, fn HookFunc) {
	if fn == nil {
		panic("OnTick: fn must not be nil")
	}
	c.tickHooks.add(id, fn)
}

// OffTick removes the tick hook registered under id. Returns false if none was registered.
func (c *Processor) OffTick(id HookID) bool {
	return c.tickHooks.remove(id)
}

// HasTickHook reports whether a tick hook is registered under id.
func (c *Processor) HasTickHook(id HookID) bool {
	return c.tickHooks.has(id)
}

// TickHookCount returns the number of registered tick hooks.
func (c *Processor) TickHookCount() int {
	return len(c.tickHooks.entries)
}

// OnClear registers fn under id for clear notifications.
func (c *Processor) OnClear(id HookID, fn HookFunc) {
	if fn == nil {
		panic("OnClear: fn must not be nil")
	}
	c.clearHooks.add(id, fn)
}

// OffClear removes the clear hook registered under id.
func (c *Processor) OffClear(id HookID) bool {
	return c.clearHooks.remove(id)
}
