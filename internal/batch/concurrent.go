package batch

// concurrent.go — worker pool para análisis paralelo de temporadas.
//
// El paralelismo vive a nivel de temporada, no de trial Monte Carlo: cada
// worker corre pipelines completos e independientes, así que no hacen falta
// locks entre unidades. Los resultados llegan sin orden y se reordenan al final.

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Parallel analiza las temporadas con un pool fijo de workers. workers <= 0
// usa runtime.NumCPU().
func (r *Runner) Parallel(ctx context.Context, seasonIDs []string) (*Summary, error) {
	workers := r.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(seasonIDs) {
		workers = len(seasonIDs)
	}
	if workers < 1 {
		workers = 1
	}

	type done struct {
		id     string
		result *domain.AnalysisResult
		err    error
	}

	workCh := make(chan string, len(seasonIDs))
	resultCh := make(chan done, len(seasonIDs))

	// Pool: cada worker toma ids de workCh y publica el desenlace en resultCh.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range workCh {
				if err := ctx.Err(); err != nil {
					resultCh <- done{id: id, err: err}
					continue
				}
				result, err := r.runOne(ctx, id)
				resultCh <- done{id: id, result: result, err: err}
			}
		}()
	}

	for _, id := range seasonIDs {
		workCh <- id
	}
	close(workCh)

	// Cerrar resultCh cuando todos los workers terminen.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	summary := newSummary()
	for d := range resultCh {
		summary.record(d.id, d.result, d.err)
	}
	summary.sort()

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("batch.Parallel: %w", err)
	}
	return summary, nil
}
