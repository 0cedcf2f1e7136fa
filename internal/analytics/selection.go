package analytics

import "github.com/preston-bernstein/fpl-dashboard/internal/domain/league"

// DefaultSelectionSize is how many managers multi-select views start with.
const DefaultSelectionSize = 5

// ManagerNames lists manager names in input order.
func ManagerNames(managers []league.Manager) []string {
	names := make([]string, 0, len(managers))
	for _, m := range managers {
		names = append(names, m.ManagerName)
	}
	return names
}

// DefaultSelection returns the first five manager names, or all when fewer.
func DefaultSelection(managers []league.Manager) []string {
	names := ManagerNames(managers)
	return names[:min(DefaultSelectionSize, len(names))]
}

// ResolveSelection keeps requested names that belong to a manager, preserving
// request order and dropping duplicates.
func ResolveSelection(managers []league.Manager, requested []string) []string {
	known := make(map[string]bool, len(managers))
	for _, m := range managers {
		known[m.ManagerName] = true
	}
	seen := make(map[string]bool, len(requested))
	out := make([]string, 0, len(requested))
	for _, name := range requested {
		if known[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// ManagerByName returns the first manager with name.
func ManagerByName(managers []league.Manager, name string) (league.Manager, bool) {
	for _, m := range managers {
		if m.ManagerName == name {
			return m, true
		}
	}
	return league.Manager{}, false
}

// ManagerByID returns the manager with the given external id.
func ManagerByID(managers []league.Manager, externalID string) (league.Manager, bool) {
	for _, m := range managers {
		if m.ExternalID == externalID {
			return m, true
		}
	}
	return league.Manager{}, false
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
