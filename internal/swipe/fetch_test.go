package swipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sofuetakuma112/bb-hono/internal/feed"
	"github.com/sofuetakuma112/bb-hono/internal/post"
)

func TestFetcherRetriesThenSucceeds(t *testing.T) {
	calls := 0
	f := &Fetcher{
		Fn: func(ctx context.Context) ([]feed.Post, error) {
			calls++
			if calls < 2 {
				return nil, errors.New("réseau indisponible")
			}
			return []feed.Post{{Post: post.Post{ID: "p1"}}}, nil
		},
		MaxElapsedTime: 5 * time.Second,
	}

	posts, err := f.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 2, calls)
}

func TestFetcherGivesUpAfterMaxElapsedTime(t *testing.T) {
	f := &Fetcher{
		Fn: func(ctx context.Context) ([]feed.Post, error) {
			return nil, errors.New("réseau indisponible")
		},
		MaxElapsedTime: 100 * time.Millisecond,
	}

	_, err := f.Fetch(context.Background())

	assert.Error(t, err)
}

func TestFetcherCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &Fetcher{
		Fn: func(ctx context.Context) ([]feed.Post, error) {
			return nil, errors.New("réseau indisponible")
		},
		MaxElapsedTime: 5 * time.Second,
	}

	_, err := f.Fetch(ctx)

	assert.Error(t, err)
}
