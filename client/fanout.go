package client

import (
	"context"
	"sync"
)

// ResolvePosts fetches full detail for each reference in parallel, one
// request per reference. A failed detail fetch removes only that
// reference from the cursor and reports it through onFail; sibling
// fetches and the cursor's paging state are untouched. onFail calls
// are serialized, so the callback may touch shared state without its
// own locking. Results keep the order of ids, with failed references
// omitted.
func (c *Client) ResolvePosts(ctx context.Context, cursor *Cursor, ids []string, onFail func(id string, err error)) []PostDetail {
	slots := make([]*PostDetail, len(ids))

	var wg sync.WaitGroup
	var failMu sync.Mutex
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			detail, err := c.ViewPost(ctx, id)
			if err != nil {
				if cursor != nil {
					cursor.Remove(id)
				}
				if onFail != nil {
					failMu.Lock()
					onFail(id, err)
					failMu.Unlock()
				}
				return
			}
			slots[i] = &detail
		}(i, id)
	}
	wg.Wait()

	details := make([]PostDetail, 0, len(ids))
	for _, slot := range slots {
		if slot != nil {
			details = append(details, *slot)
		}
	}
	return details
}

// ResolveAccounts is the account analogue of ResolvePosts for
// follower/search lists keyed by username.
func (c *Client) ResolveAccounts(ctx context.Context, cursor *Cursor, usernames []string, onFail func(username string, err error)) []Profile {
	slots := make([]*Profile, len(usernames))

	var wg sync.WaitGroup
	var failMu sync.Mutex
	for i, username := range usernames {
		wg.Add(1)
		go func(i int, username string) {
			defer wg.Done()
			profile, err := c.ViewAccount(ctx, username)
			if err != nil {
				if cursor != nil {
					cursor.Remove(username)
				}
				if onFail != nil {
					failMu.Lock()
					onFail(username, err)
					failMu.Unlock()
				}
				return
			}
			slots[i] = &profile
		}(i, username)
	}
	wg.Wait()

	profiles := make([]Profile, 0, len(usernames))
	for _, slot := range slots {
		if slot != nil {
			profiles = append(profiles, *slot)
		}
	}
	return profiles
}
