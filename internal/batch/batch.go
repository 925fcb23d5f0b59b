package batch

// batch.go — coordinación de un lote de temporadas.
//
// La unidad de trabajo es el pipeline completo de una temporada: totalmente
// independiente entre temporadas, sin estado mutable compartido. Un fallo por
// temporada se registra y el lote continúa; nunca se omite en silencio.

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
	"github.com/alejandrodnm/leaguebalance/internal/ports"
)

// SeasonFunc ejecuta el análisis de una temporada por id.
type SeasonFunc func(ctx context.Context, seasonID string) (*domain.AnalysisResult, error)

// Summary es el desenlace de un lote: resultados completados más las
// temporadas saltadas con su causa.
type Summary struct {
	Results []*domain.AnalysisResult
	Skipped map[string]error
}

// Runner coordina la ejecución del lote y la persistencia de resultados.
type Runner struct {
	run      SeasonFunc
	store    ports.ResultStore // puede ser nil (dry run)
	notifier ports.Notifier    // puede ser nil
	workers  int
}

// NewRunner crea el coordinador. workers solo afecta al modo paralelo.
func NewRunner(run SeasonFunc, store ports.ResultStore, notifier ports.Notifier, workers int) *Runner {
	return &Runner{run: run, store: store, notifier: notifier, workers: workers}
}

// Sequential analiza las temporadas una a una, en orden. El aislamiento más
// simple: el fallo de una temporada se captura, se loguea y se sigue.
func (r *Runner) Sequential(ctx context.Context, seasonIDs []string) (*Summary, error) {
	summary := newSummary()
	for _, id := range seasonIDs {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch.Sequential: %w", err)
		}
		result, err := r.runOne(ctx, id)
		summary.record(id, result, err)
	}
	summary.sort()
	return summary, nil
}

// runOne ejecuta una temporada, persiste el resultado y notifica. Los pánicos
// del pipeline se convierten en error de esa temporada.
func (r *Runner) runOne(ctx context.Context, id string) (result *domain.AnalysisResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("batch.runOne: season %q panicked: %v", id, rec)
		}
	}()

	result, err = r.run(ctx, id)
	if err != nil {
		slog.Error("season failed, skipping", "season", id, "err", err)
		if r.notifier != nil {
			r.notifier.SeasonDone(ctx, nil, err)
		}
		return nil, err
	}

	if r.store != nil {
		if serr := r.store.SaveResult(ctx, result); serr != nil {
			// El resultado sigue siendo válido; la persistencia fallida se
			// loguea y no tumba la temporada.
			slog.Error("failed to persist result", "season", id, "err", serr)
		}
	}
	if r.notifier != nil {
		r.notifier.SeasonDone(ctx, result, nil)
	}
	return result, nil
}

func newSummary() *Summary {
	return &Summary{Skipped: make(map[string]error)}
}

func (s *Summary) record(id string, result *domain.AnalysisResult, err error) {
	if err != nil {
		s.Skipped[id] = err
		return
	}
	s.Results = append(s.Results, result)
}

// sort deja los resultados en orden estable por id; el modo paralelo los
// recolecta sin orden.
func (s *Summary) sort() {
	sort.Slice(s.Results, func(i, j int) bool {
		return s.Results[i].SeasonID < s.Results[j].SeasonID
	})
}
