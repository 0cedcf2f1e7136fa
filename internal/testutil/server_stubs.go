package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
)

// StubPoller implements the server's Poller for tests.
type StubPoller struct {
	mu           sync.Mutex
	StartCalls   int
	StopCalls    int
	RefreshCalls int
	Err          error
	RefreshErr   error
	StatusVal    poller.Status
	CycleVal     poller.Cycle
}

func (p *StubPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
}

func (p *StubPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

func (p *StubPoller) Refresh(ctx context.Context) (poller.Cycle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefreshCalls++
	return p.CycleVal, p.RefreshErr
}

// Calls returns the start and stop counts under the lock.
func (p *StubPoller) Calls() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe
// blocks until Shutdown when ListenErr is nil, like a real server.
type StubHTTPServer struct {
	AddrVal    string
	HandlerVal http.Handler
	ListenErr  error

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closed        chan struct{}
	closeOnce     sync.Once
}

func (s *StubHTTPServer) init() {
	s.mu.Lock()
	if s.closed == nil {
		s.closed = make(chan struct{})
	}
	s.mu.Unlock()
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.init()
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	if s.ListenErr != nil {
		return s.ListenErr
	}
	<-s.closed
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.init()
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Calls returns how often ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}

// ErrListen is returned by FailingHTTPServer.
var ErrListen = errors.New("listen failure")

// FailingHTTPServer returns a StubHTTPServer whose ListenAndServe fails at once.
func FailingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{AddrVal: ":0", ListenErr: ErrListen}
}
