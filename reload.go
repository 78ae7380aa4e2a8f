package tagger

import (
	"context"
	"errors"
	"sync"
	"time"
)

// RulesetHandle wraps an immutable Ruleset so it can be swapped for a freshly
// parsed one while workers keep evaluating
// Individual rulesets are never mutated, only the pointer changes under lock
type RulesetHandle struct {
	sync.RWMutex
	rs *Ruleset
	c  Config
}

// NewRulesetHandle does an initial strict load, a broken rule file on startup
// is still fatal
func NewRulesetHandle(c Config) (*RulesetHandle, error) {
	h := &RulesetHandle{c: c}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *RulesetHandle) load() error {
	rs, err := NewRuleset(h.c)
	if err != nil {
		return err
	}
	h.RWMutex.Lock()
	defer h.RWMutex.Unlock()
	h.rs = rs
	return nil
}

// RunLoader periodically reloads tag files from disk
// A reload failure keeps the previous good ruleset and is passed to errFn
func (h *RulesetHandle) RunLoader(ctx context.Context, d time.Duration, errFn func(error)) error {
	if d == 0 {
		return errors.New("ruleset reloader requires a tick interval")
	}
	go func(ctx context.Context) {
		tick := time.NewTicker(d)
		defer tick.Stop()
	loop:
		for {
			select {
			case <-tick.C:
				if err := h.load(); err != nil && errFn != nil {
					errFn(err)
				}
			case <-ctx.Done():
				break loop
			}
		}
	}(ctx)
	return nil
}

// Ruleset returns the current ruleset value
func (h *RulesetHandle) Ruleset() *Ruleset {
	h.RWMutex.RLock()
	defer h.RWMutex.RUnlock()
	return h.rs
}

// EvalAll matches a single record against the current ruleset
func (h *RulesetHandle) EvalAll(e Event) (Results, bool) {
	return h.Ruleset().EvalAll(e)
}
