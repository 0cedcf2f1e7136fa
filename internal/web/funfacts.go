package web

import (
	"net/http"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

func (h *Handler) funFacts(_ *http.Request, p *page, managers []league.Manager) {
	p.Body = analytics.BuildFunFacts(managers)
}
