package classifier

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/spamsift/internal/model"
)

// ProgressFunc is called after each message in a batch is classified.
type ProgressFunc func(done int)

// ClassifyBatch classifies texts with up to workers goroutines. Verdicts are
// returned in input order. The first failure cancels the rest of the batch.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string, workers int, progress ProgressFunc) ([]*model.Verdict, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	verdicts := make([]*model.Verdict, len(texts))
	done := make(chan struct{}, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		g.Go(func() error {
			v, err := c.Classify(gctx, text)
			if err != nil {
				return fmt.Errorf("message %d: %w", i+1, err)
			}
			verdicts[i] = v
			done <- struct{}{}
			return nil
		})
	}

	reported := make(chan struct{})
	go func() {
		defer close(reported)
		n := 0
		for range done {
			n++
			if progress != nil {
				progress(n)
			}
		}
	}()

	err := g.Wait()
	close(done)
	<-reported

	if err != nil {
		return nil, err
	}
	return verdicts, nil
}
