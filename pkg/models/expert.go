// Package models defines the shared data types for quorum.
package models

import "strings"

// Expert is a named persona used to condition model responses.
// Experts are immutable for the duration of an analysis batch; the
// roster may change between batches but never mid-run.
type Expert struct {
	// ID is the unique identifier for this expert.
	ID string `json:"id" yaml:"id"`
	// Name is the display name (also the delegation target name).
	Name string `json:"name" yaml:"name"`
	// Role is a short title, e.g. "Financial Analyst".
	Role string `json:"role" yaml:"role"`
	// Description is the free-text persona prompt.
	Description string `json:"description" yaml:"description"`
	// Avatar is a reference to the expert's avatar (emoji or image key).
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Team is an ordered set of experts eligible for dispatch and as
// delegation targets. Order is the display order.
type Team []Expert

// ByID returns the expert with the given id, or false if absent.
func (t Team) ByID(id string) (Expert, bool) {
	for _, e := range t {
		if e.ID == id {
			return e, true
		}
	}
	return Expert{}, false
}

// ResolveName resolves a delegation target name to a team member using
// case-insensitive substring containment in either direction. The first
// match in team order wins. Returns false if no member matches.
func (t Team) ResolveName(name string) (Expert, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Expert{}, false
	}
	for _, e := range t {
		have := strings.ToLower(e.Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return e, true
		}
	}
	return Expert{}, false
}

// Teammates returns the team without the expert identified by id.
func (t Team) Teammates(id string) Team {
	out := make(Team, 0, len(t))
	for _, e := range t {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
