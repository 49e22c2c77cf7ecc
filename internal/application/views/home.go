package views

import (
	"context"
	"sync"
)

// partialDataWarning is shown when at least one counter fetch failed;
// the successful counters still render.
const partialDataWarning = "some data could not be loaded"

// HomePage shows the projects/tasks/users counters. Each count is
// fetched independently and tolerantly: a nil count means its fetch
// failed and the page degrades to a warning instead of an error state.
type HomePage struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	state    State
	warning  string
	projects *int
	tasks    *int
	users    *int

	deps Deps
}

// NewHomePage builds the page; call Load to fetch.
func NewHomePage(ctx context.Context, deps Deps) *HomePage {
	pageCtx, cancel := context.WithCancel(ctx)
	return &HomePage{
		ctx:    pageCtx,
		cancel: cancel,
		state:  StateLoading,
		deps:   deps,
	}
}

// Load fetches the three counters in parallel with a tolerant join.
func (p *HomePage) Load() {
	var wg sync.WaitGroup
	var projects, tasks, users *int
	var failed bool
	var failedMu sync.Mutex

	count := func(out **int, fetch func(ctx context.Context) (int, error)) {
		defer wg.Done()
		n, err := fetch(p.ctx)
		if err != nil {
			failedMu.Lock()
			failed = true
			failedMu.Unlock()
			return
		}
		*out = &n
	}

	wg.Add(3)
	go count(&projects, func(ctx context.Context) (int, error) {
		list, err := p.deps.Client.ListProjects(ctx)
		return len(list), err
	})
	go count(&tasks, func(ctx context.Context) (int, error) {
		list, err := p.deps.Client.ListTasks(ctx)
		return len(list), err
	})
	go count(&users, func(ctx context.Context) (int, error) {
		list, err := p.deps.Client.ListUsers(ctx)
		return len(list), err
	})
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return
	}

	p.state = StateReady
	p.projects = projects
	p.tasks = tasks
	p.users = users
	if failed {
		p.warning = partialDataWarning
	}
}

// Close tears the page down.
func (p *HomePage) Close() {
	p.cancel()
}

// State returns the lifecycle state.
func (p *HomePage) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Error returns the load error message. HomePage degrades partial
// failures to a warning instead of an error state, so this is empty.
func (p *HomePage) Error() string {
	return ""
}

// Warning returns the partial-failure warning, if any.
func (p *HomePage) Warning() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.warning
}

// Counts returns the three counters; nil means that fetch failed.
func (p *HomePage) Counts() (projects, tasks, users *int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.projects, p.tasks, p.users
}
