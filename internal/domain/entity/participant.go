package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Group is the closed set of participants every record must resolve against.
type Group struct {
	names []string
	index map[string]struct{}
}

// NewGroup builds a group from participant names. Names are trimmed and
// deduplicated; an empty name is an error.
func NewGroup(names ...string) (Group, error) {
	index := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return Group{}, fmt.Errorf("participant name must not be empty")
		}
		if _, seen := index[name]; seen {
			continue
		}
		index[name] = struct{}{}
		uniq = append(uniq, name)
	}
	sort.Strings(uniq)
	return Group{names: uniq, index: index}, nil
}

// Contains reports whether name is a member of the group.
func (g Group) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Names returns the members sorted by name.
func (g Group) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Size returns the number of members.
func (g Group) Size() int {
	return len(g.names)
}
