package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pathboard.dev/pathboard/storage"
)

// Client fetches upstream documents through a Source, reusing a
// recent snapshot when one exists and joining concurrent refreshes of
// the same document into a single request.
type Client struct {
	Source      Source
	Storage     storage.Storage
	ReuseWindow time.Duration
	TimeNow     func() time.Time

	logger zerolog.Logger

	mutex    sync.Mutex
	inflight map[string]*call
}

type call struct {
	done      chan struct{}
	payload   []byte
	fetchedAt time.Time
	err       error
}

func NewClient(source Source, st storage.Storage, logger zerolog.Logger) *Client {
	return &Client{
		Source:      source,
		Storage:     st,
		ReuseWindow: DefaultReuseWindow,
		TimeNow:     time.Now,
		logger:      logger,
		inflight:    map[string]*call{},
	}
}

// Returns the payload for the given snapshot kind, and the time it
// was fetched.
//
// A snapshot fetched within ReuseWindow is returned as is, unless
// force is set. If a fetch for the kind is already in flight, the
// call joins it instead of issuing another request, force or not.
// When the upstream fails but a previous snapshot exists, the
// snapshot is served, however stale; the caller asked for a board,
// not for an error it can't act on.
func (c *Client) Get(ctx context.Context, kind string, url string, force bool) ([]byte, time.Time, error) {
	c.mutex.Lock()

	if cl, found := c.inflight[kind]; found {
		c.mutex.Unlock()
		c.logger.Debug().Str("kind", kind).Msg("joining in-flight fetch")
		select {
		case <-cl.done:
		case <-ctx.Done():
			return nil, time.Time{}, ctx.Err()
		}
		return cl.payload, cl.fetchedAt, cl.err
	}

	if !force {
		payload, fetchedAt, err := c.Storage.GetSnapshot(kind)
		if err == nil && c.TimeNow().Sub(fetchedAt) < c.ReuseWindow {
			c.mutex.Unlock()
			c.logger.Debug().Str("kind", kind).Time("fetched_at", fetchedAt).Msg("reusing recent snapshot")
			return payload, fetchedAt, nil
		}
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[kind] = cl
	c.mutex.Unlock()

	cl.payload, cl.fetchedAt, cl.err = c.fetch(ctx, kind, url)

	c.mutex.Lock()
	delete(c.inflight, kind)
	c.mutex.Unlock()

	close(cl.done)

	return cl.payload, cl.fetchedAt, cl.err
}

func (c *Client) fetch(ctx context.Context, kind string, url string) ([]byte, time.Time, error) {
	c.logger.Debug().Str("kind", kind).Str("url", url).Msg("starting fetch")

	payload, err := c.Source.Get(ctx, url)
	if err != nil {
		stored, fetchedAt, serr := c.Storage.GetSnapshot(kind)
		if serr == nil {
			c.logger.Warn().Err(err).Str("kind", kind).Msg("fetch failed, serving last good snapshot")
			return stored, fetchedAt, nil
		}
		return nil, time.Time{}, fmt.Errorf("fetching %s: %w", kind, err)
	}

	now := c.TimeNow()
	if err := c.Storage.PutSnapshot(kind, now, payload); err != nil {
		return nil, time.Time{}, fmt.Errorf("storing %s snapshot: %w", kind, err)
	}

	return payload, now, nil
}
