package web

import (
	"net/http"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

const managerParam = "manager"

type option struct {
	Value    string
	Selected bool
}

type selector struct {
	Name     string
	Label    string
	Multiple bool
	Options  []option
}

// selectedManagers resolves repeated ?manager= values. When the parameter is
// absent the fallback selection applies; an explicit empty selection stays empty.
func selectedManagers(r *http.Request, managers []league.Manager, fallback []string) []string {
	requested, ok := r.URL.Query()[managerParam]
	if !ok {
		return fallback
	}
	return analytics.ResolveSelection(managers, requested)
}

// selectedManager returns the single manager picked with ?manager=, or the
// first manager in the league.
func selectedManager(r *http.Request, managers []league.Manager) string {
	values := r.URL.Query()[managerParam]
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != "" {
			return values[i]
		}
	}
	if len(managers) == 0 {
		return ""
	}
	return managers[0].ManagerName
}

func newSelector(label string, multiple bool, managers []league.Manager, selected []string) selector {
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}
	s := selector{Name: managerParam, Label: label, Multiple: multiple}
	for _, name := range analytics.ManagerNames(managers) {
		s.Options = append(s.Options, option{Value: name, Selected: chosen[name]})
	}
	return s
}
