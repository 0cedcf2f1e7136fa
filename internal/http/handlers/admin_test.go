package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
	"github.com/preston-bernstein/fpl-dashboard/internal/testutil"
)

type stubInvalidator struct {
	calls int
	err   error
}

func (s *stubInvalidator) Invalidate(context.Context) error {
	s.calls++
	return s.err
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshSuccess(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	inv := &stubInvalidator{}
	refresher := &testutil.StubPoller{CycleVal: poller.Cycle{Date: "2025-01-15", Managers: 3, Snapshot: true}}
	h := NewAdminHandler(inv, refresher, "secret", logger)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body struct {
		Status   string `json:"status"`
		Date     string `json:"date"`
		Managers int    `json:"managers"`
		Snapshot bool   `json:"snapshot"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Status != "ok" || body.Date != "2025-01-15" || body.Managers != 3 || !body.Snapshot {
		t.Fatalf("unexpected refresh body %+v", body)
	}
	if inv.calls != 1 || refresher.RefreshCalls != 1 {
		t.Fatalf("expected one invalidation and one refresh, got %d/%d", inv.calls, refresher.RefreshCalls)
	}
}

func TestAdminRefreshUnauthorized(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	inv := &stubInvalidator{}
	refresher := &testutil.StubPoller{}

	for _, tc := range []struct {
		name   string
		token  string
		header string
	}{
		{"missing header", "secret", ""},
		{"wrong token", "secret", "Bearer nope"},
		{"wrong scheme", "secret", "Basic secret"},
		{"empty configured token", "", "Bearer "},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAdminHandler(inv, refresher, tc.token, logger)
			req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.Refresh), req), http.StatusUnauthorized)
		})
	}
	if inv.calls != 0 || refresher.RefreshCalls != 0 {
		t.Fatalf("unauthorized requests must not touch the cache")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected unauthorized attempts to be logged")
	}
}

func TestAdminRefreshFailures(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()

	h := NewAdminHandler(nil, nil, "secret", logger)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret")), http.StatusServiceUnavailable)

	h = NewAdminHandler(&stubInvalidator{err: errors.New("redis down")}, &testutil.StubPoller{}, "secret", logger)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret")), http.StatusInternalServerError)

	refresher := &testutil.StubPoller{RefreshErr: errors.New("cdf down")}
	h = NewAdminHandler(&stubInvalidator{}, refresher, "secret", logger)
	testutil.AssertStatus(t, testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret")), http.StatusBadGateway)
}
