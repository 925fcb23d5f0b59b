package ports

import (
	"context"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Notifier publica el progreso y el resumen del batch hacia el usuario.
type Notifier interface {
	// SeasonDone se llama al terminar cada temporada (ok o fallida).
	SeasonDone(ctx context.Context, result *domain.AnalysisResult, err error)

	// Summary imprime el resumen tabular del batch completo, incluyendo las
	// temporadas saltadas.
	Summary(ctx context.Context, results []*domain.AnalysisResult, skipped map[string]error) error
}
