package client

import (
	"context"
	"sync"
)

// State describes where a Cursor is in its paging lifecycle.
type State int

const (
	// StateAwaitingVisibility means the next page will be fetched the
	// next time the sentinel becomes visible.
	StateAwaitingVisibility State = iota
	// StateFetching means a request is in flight; further visibility
	// triggers are ignored until it completes.
	StateFetching
	// StateExhausted means a short or empty page was received; no
	// further fetches happen until an explicit Reset.
	StateExhausted
	// StateFailed means the last fetch errored; the next trigger
	// retries the same page.
	StateFailed
	// StateClosed means the owning view was torn down; late results
	// are discarded and the cursor never fetches again.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingVisibility:
		return "awaiting-visibility"
	case StateFetching:
		return "fetching"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FetchPage loads one page of references for a list endpoint.
type FetchPage func(ctx context.Context, page int) ([]string, error)

// Cursor owns the paging state of one list view: the page counter, the
// accumulated references, and the exhaustion flag. The accumulated
// list is append-only between resets; switching category or subject
// means building a new cursor or calling Reset.
type Cursor struct {
	mu          sync.Mutex
	fetch       FetchPage
	pageSize    int
	state       State
	page        int
	refs        []string
	generation  int
	cancelFetch context.CancelFunc
}

func NewCursor(fetch FetchPage) *Cursor {
	return &Cursor{
		fetch:    fetch,
		pageSize: DefaultPageSize,
		state:    StateAwaitingVisibility,
	}
}

// Trigger is the visibility callback: invoke it whenever the sentinel
// element becomes visible. At most one fetch is ever in flight; a
// trigger while fetching, exhausted, or closed does nothing and
// reports fetched=false. A trigger after a failure retries the same
// page. A full page keeps the cursor eligible for the next trigger; a
// short or empty page exhausts it.
func (c *Cursor) Trigger(ctx context.Context) (fetched bool, err error) {
	c.mu.Lock()
	if c.state != StateAwaitingVisibility && c.state != StateFailed {
		c.mu.Unlock()
		return false, nil
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	c.state = StateFetching
	c.cancelFetch = cancel
	page := c.page
	generation := c.generation
	c.mu.Unlock()

	refs, err := c.fetch(fetchCtx, page)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	// A reset or close while the request was in flight makes this
	// result stale; it must not touch the new state.
	if c.generation != generation || c.state == StateClosed {
		return false, nil
	}

	if err != nil {
		c.state = StateFailed
		return false, err
	}

	c.refs = append(c.refs, refs...)
	if len(refs) < c.pageSize {
		c.state = StateExhausted
	} else {
		c.page++
		c.state = StateAwaitingVisibility
	}
	return true, nil
}

// Reset rewinds the cursor for a category or subject change: page back
// to zero, accumulated references cleared, any in-flight fetch
// cancelled and its result discarded.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.generation++
	c.page = 0
	c.refs = nil
	c.state = StateAwaitingVisibility
}

// Close tears the cursor down with its owning view. Any in-flight
// fetch is cancelled and late results are dropped.
func (c *Cursor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.generation++
	c.state = StateClosed
}

// Remove drops a single reference from the accumulated list, used when
// that reference's detail fetch failed. Other references and the
// paging state are untouched.
func (c *Cursor) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ref := range c.refs {
		if ref == id {
			c.refs = append(c.refs[:i], c.refs[i+1:]...)
			return true
		}
	}
	return false
}

// References returns a copy of the accumulated reference list.
func (c *Cursor) References() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.refs))
	copy(out, c.refs)
	return out
}

func (c *Cursor) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Cursor) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Exhausted reports whether the final page has been seen; only Reset
// clears it.
func (c *Cursor) Exhausted() bool {
	return c.State() == StateExhausted
}
