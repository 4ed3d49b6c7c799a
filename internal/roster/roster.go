// Package roster holds the candidate name list a batch run matches
// pages against, plus read-only loaders for the list-management
// sources the surrounding application maintains (flat file, XLSX
// sheet, SQLite employee table).
package roster

import "strings"

// Roster is an ordered collection of distinct person names. Names are
// canonicalized to trimmed uppercase on entry; identity is
// case-insensitive. The core never mutates a Roster during a run.
type Roster struct {
	names []string
	seen  map[string]struct{}
}

// New builds a Roster from raw names, trimming, uppercasing and
// dropping empties and duplicates while preserving first-seen order.
func New(names []string) *Roster {
	r := &Roster{seen: make(map[string]struct{}, len(names))}
	for _, n := range names {
		r.add(n)
	}
	return r
}

func (r *Roster) add(name string) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return
	}
	if _, dup := r.seen[n]; dup {
		return
	}
	r.seen[n] = struct{}{}
	r.names = append(r.names, n)
}

// Names returns the canonical names in roster order. Callers must not
// modify the returned slice.
func (r *Roster) Names() []string { return r.names }

func (r *Roster) Len() int { return len(r.names) }

// Contains reports whether the canonical form of name is in the roster.
func (r *Roster) Contains(name string) bool {
	_, ok := r.seen[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}
