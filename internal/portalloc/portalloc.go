// Package portalloc enforces the 10-wide non-overlapping port-section
// invariant across every cached ServerGroup. It reads the portSection field
// of servergroups.* hashes directly through internal/cache rather than
// through the servergroup codec, so that servergroup (which needs a fresh
// section while building a group) can depend on portalloc without a cycle.
package portalloc

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
)

// ErrStorage wraps any cache transport failure encountered while allocating
// or reconciling a port section.
var ErrStorage = fmt.Errorf("portalloc: cache transport error")

// Min and Max bound the valid port-section range, per spec.md §4.E: a fresh
// section is drawn from [Min, Max).
const (
	Min uint16 = 25565
	Max uint16 = 26001

	// RerollMin is the lower bound used when rerolling a colliding section
	// (spec.md §8 scenario 2): [25566, 26001).
	RerollMin uint16 = 25566
)

// Conflicts reports whether port sections p and q collide under the
// symmetric 10-wide-block rule: |p-q| <= 10 or p == q. This is the single
// collision predicate used everywhere in this package and by its callers —
// see SPEC_FULL.md's note on the original's two drifted predicates.
func Conflicts(p, q uint16) bool {
	if p == q {
		return true
	}
	var diff uint16
	if p > q {
		diff = p - q
	} else {
		diff = q - p
	}
	return diff <= 10
}

// AllPortSections returns the portSection field of every cached servergroup,
// excluding the one named exclude (if non-empty).
func AllPortSections(ctx context.Context, c *cache.Client, exclude string) ([]uint16, error) {
	keys, err := c.Keys(ctx, "servergroups.*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	sections := make([]uint16, 0, len(keys))
	for _, key := range keys {
		prefix := key[len("servergroups."):]
		if prefix == exclude {
			continue
		}
		hash, err := c.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		raw, ok := hash["portSection"]
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			continue
		}
		sections = append(sections, uint16(n))
	}
	return sections, nil
}

// conflictsWithAny reports whether section collides with any of sections.
func conflictsWithAny(section uint16, sections []uint16) bool {
	for _, s := range sections {
		if Conflicts(section, s) {
			return true
		}
	}
	return false
}

// RndPort returns a fresh, non-conflicting port section drawn from
// [Min, Max).
func RndPort(ctx context.Context, c *cache.Client) (uint16, error) {
	sections, err := AllPortSections(ctx, c, "")
	if err != nil {
		return 0, err
	}
	section := randInRange(Min, Max)
	for conflictsWithAny(section, sections) {
		section = randInRange(Min, Max)
	}
	return section, nil
}

// Reconcile rerolls section (in [RerollMin, Max)) until it no longer
// conflicts with any other cached group's port section, excluding the group
// named prefix from the comparison set. It returns the safe section to
// persist.
func Reconcile(ctx context.Context, c *cache.Client, prefix string, section uint16) (uint16, error) {
	sections, err := AllPortSections(ctx, c, prefix)
	if err != nil {
		return 0, err
	}
	for conflictsWithAny(section, sections) {
		section = randInRange(RerollMin, Max)
	}
	return section, nil
}

// randInRange returns a uniform value in [lo, hi).
func randInRange(lo, hi uint16) uint16 {
	return lo + uint16(rand.Intn(int(hi-lo)))
}
