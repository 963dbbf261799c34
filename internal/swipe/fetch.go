package swipe

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sofuetakuma112/bb-hono/internal/feed"
)

// FetchFunc charge une page de candidats.
type FetchFunc func(ctx context.Context) ([]feed.Post, error)

// Fetcher encapsule le refetch de candidats avec retry borné et backoff
// exponentiel. Annulable par contexte : un refetch devenu obsolète est
// abandonné plutôt qu'appliqué.
type Fetcher struct {
	Fn FetchFunc
	// Durée totale maximale des tentatives. Zéro = défaut (15s).
	MaxElapsedTime time.Duration
}

func (f *Fetcher) Fetch(ctx context.Context) ([]feed.Post, error) {
	b := backoff.NewExponentialBackOff()
	if f.MaxElapsedTime > 0 {
		b.MaxElapsedTime = f.MaxElapsedTime
	} else {
		b.MaxElapsedTime = 15 * time.Second
	}

	var candidates []feed.Post
	operation := func() error {
		posts, err := f.Fn(ctx)
		if err != nil {
			return err
		}
		candidates = posts
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return candidates, nil
}
