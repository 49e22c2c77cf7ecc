// Package views holds the page view models behind the dashboard: one
// type per page, a shared list-page core, and the stateless card
// builders. Pages own a context cancelled on Close; an operation whose
// result arrives after Close never mutates page state.
package views

import (
	"context"
	"sync"
)

// State is the page lifecycle state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// DialogKind identifies the open modal, if any. The kinds are mutually
// exclusive: a page has at most one dialog open.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogCreate
	DialogEdit
	DialogDelete
)

type dialog struct {
	kind     DialogKind
	entityID int64
}

// ListPage is the shared core of every list page: loading/ready/error
// state, the item slice, and the single dialog slot. T is the
// (possibly enriched) list element.
type ListPage[T any] struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	state  State
	errMsg string
	items  []T
	dialog dialog

	fetch func(ctx context.Context) ([]T, error)
	idOf  func(T) int64
}

func newListPage[T any](parent context.Context, fetch func(ctx context.Context) ([]T, error), idOf func(T) int64) *ListPage[T] {
	ctx, cancel := context.WithCancel(parent)
	return &ListPage[T]{
		ctx:    ctx,
		cancel: cancel,
		state:  StateLoading,
		fetch:  fetch,
		idOf:   idOf,
	}
}

// Load performs the mount fetch. Failure enters the error state with
// the fetch error's message; there is no automatic retry.
func (p *ListPage[T]) Load() {
	items, err := p.fetch(p.ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedLocked() {
		return
	}

	if err != nil {
		p.state = StateError
		p.errMsg = err.Error()
		return
	}
	p.state = StateReady
	p.errMsg = ""
	p.items = items
}

// Close tears the page down. In-flight operations are cancelled and
// any stragglers are dropped at commit time.
func (p *ListPage[T]) Close() {
	p.cancel()
}

// Context returns the page-scoped context for operations the page
// starts.
func (p *ListPage[T]) Context() context.Context {
	return p.ctx
}

// State returns the lifecycle state.
func (p *ListPage[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Error returns the page-level error message, if any.
func (p *ListPage[T]) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Items returns a copy of the current list.
func (p *ListPage[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Dialog returns the open dialog kind and its target entity id.
func (p *ListPage[T]) Dialog() (DialogKind, int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialog.kind, p.dialog.entityID
}

// OpenCreate opens the create dialog, replacing any open dialog.
func (p *ListPage[T]) OpenCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialog = dialog{kind: DialogCreate}
}

// OpenEdit opens the edit dialog for the entity and returns a copy of
// it for form prefill. It reports false when the entity is not in the
// current list.
func (p *ListPage[T]) OpenEdit(id int64) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.findLocked(id)
	if !ok {
		var zero T
		return zero, false
	}
	p.dialog = dialog{kind: DialogEdit, entityID: id}
	return item, true
}

// OpenDelete opens the delete confirmation dialog for the entity.
func (p *ListPage[T]) OpenDelete(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.findLocked(id); !ok {
		return false
	}
	p.dialog = dialog{kind: DialogDelete, entityID: id}
	return true
}

// CloseDialog cancels whatever dialog is open. List state is
// untouched: an abandoned edit leaves no trace.
func (p *ListPage[T]) CloseDialog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialog = dialog{}
}

// patch replaces the entity with the same id, closing the dialog.
// Dropped silently when the page is closed.
func (p *ListPage[T]) patch(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedLocked() {
		return
	}

	id := p.idOf(item)
	for i := range p.items {
		if p.idOf(p.items[i]) == id {
			p.items[i] = item
			break
		}
	}
	p.dialog = dialog{}
}

// remove drops the entity with the given id, closing the dialog.
func (p *ListPage[T]) remove(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedLocked() {
		return
	}

	kept := p.items[:0]
	for _, item := range p.items {
		if p.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	p.items = kept
	p.dialog = dialog{}
}

// insert appends a freshly created entity, closing the dialog.
func (p *ListPage[T]) insert(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closedLocked() {
		return
	}
	p.items = append(p.items, item)
	p.dialog = dialog{}
}

// Find returns a copy of the entity with the given id.
func (p *ListPage[T]) Find(id int64) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.findLocked(id)
}

func (p *ListPage[T]) findLocked(id int64) (T, bool) {
	for i := range p.items {
		if p.idOf(p.items[i]) == id {
			return p.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (p *ListPage[T]) closedLocked() bool {
	return p.ctx.Err() != nil
}
