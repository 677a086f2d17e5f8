package gdocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"md2gdocs/config"
	"md2gdocs/debug"
)

// Submitter sends request lists to a document in ordered, paced batches.
type Submitter struct {
	client     *Client
	batchSize  int
	maxRetries int
	limiter    *rate.Limiter
	backoff    time.Duration
}

type SubmitterOption func(*Submitter)

// WithBackoff sets the delay before the first retry. Later retries double it.
func WithBackoff(d time.Duration) SubmitterOption {
	return func(s *Submitter) { s.backoff = d }
}

func NewSubmitter(c *Client, cfg *config.Config, opts ...SubmitterOption) *Submitter {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultConfig().BatchSize
	}

	s := &Submitter{
		client:     c,
		batchSize:  batchSize,
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(limit, 1),
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit applies reqs to the document in order. A batch that still fails
// after its retries aborts the submission; later batches are not sent.
func (s *Submitter) Submit(ctx context.Context, docID string, reqs []*docs.Request) error {
	for start := 0; start < len(reqs); start += s.batchSize {
		end := min(start+s.batchSize, len(reqs))
		if err := s.send(ctx, docID, reqs[start:end]); err != nil {
			return fmt.Errorf("batch %d-%d of %d: %w", start, end, len(reqs), err)
		}
	}
	return nil
}

func (s *Submitter) send(ctx context.Context, docID string, batch []*docs.Request) error {
	delay := s.backoff
	for attempt := 0; ; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		debug.LogRequests("batchUpdate "+docID, batch)
		_, err := s.client.Docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
			Requests: batch,
		}).Context(ctx).Do()
		if err == nil {
			return nil
		}
		if attempt >= s.maxRetries || !retryable(err) {
			return err
		}

		debug.Logger().Warn("batch update failed, retrying", "document", docID, "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func retryable(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}
