package freq

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teatak/cntext/corpus"
)

// Aggregator runs a Counter over a whole corpus in parallel. Each worker
// accumulates a private table; the only synchronization point is the final
// merge, which is order-independent because merging is key-wise summation.
//
// A document that fails to count is retried up to MaxRetries times; a
// persistent failure fails the whole run and no partial table is returned.
type Aggregator struct {
	Counter    Counter
	Patterns   corpus.IgnorePatterns
	Workers    int
	MaxRetries int
	Log        *zap.Logger
}

// NewAggregator creates an aggregator with sensible defaults.
func NewAggregator(counter Counter, patterns corpus.IgnorePatterns, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		Counter:    counter,
		Patterns:   patterns,
		Workers:    runtime.NumCPU(),
		MaxRetries: 2,
		Log:        log,
	}
}

// Run counts every document and merges the partial tables.
func (a *Aggregator) Run(ctx context.Context, docs []corpus.Document) (*Table, error) {
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	jobID := uuid.NewString()
	log := a.Log.With(zap.String("job", jobID), zap.String("counter", a.Counter.Name()))
	log.Info("starting aggregation", zap.Int("documents", len(docs)), zap.Int("workers", workers))

	jobs := make(chan corpus.Document)
	partials := make([]*Table, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		part := NewTable()
		partials[w] = part
		g.Go(func() error {
			for doc := range jobs {
				t, err := a.countWithRetry(log, doc)
				if err != nil {
					return err
				}
				part.Merge(t)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(jobs)
		for _, doc := range docs {
			select {
			case jobs <- doc:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewTable()
	for _, part := range partials {
		merged.Merge(part)
	}
	log.Info("aggregation complete", zap.Int("keys", len(merged.Counts)), zap.Int("total", merged.Total))
	return merged, nil
}

func (a *Aggregator) countWithRetry(log *zap.Logger, doc corpus.Document) (*Table, error) {
	filtered := a.Patterns.Filter(doc)
	var lastErr error
	for attempt := 0; attempt <= a.MaxRetries; attempt++ {
		t, err := a.Counter.Count(filtered)
		if err == nil {
			return t, nil
		}
		lastErr = err
		log.Warn("partition failed",
			zap.String("document", doc.Name),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, fmt.Errorf("partition %s failed after %d attempts: %w", doc.Name, a.MaxRetries+1, lastErr)
}

// RunFiles reads the named files as documents and aggregates them.
func (a *Aggregator) RunFiles(ctx context.Context, paths []string) (*Table, error) {
	docs := make([]corpus.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := corpus.ReadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return a.Run(ctx, docs)
}

// RunToFile aggregates and atomically publishes the merged table.
func (a *Aggregator) RunToFile(ctx context.Context, docs []corpus.Document, path string) (*Table, error) {
	t, err := a.Run(ctx, docs)
	if err != nil {
		return nil, err
	}
	if err := t.Save(path); err != nil {
		return nil, err
	}
	return t, nil
}
