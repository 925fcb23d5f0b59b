package ports

import (
	"context"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// ResultStore persiste los resultados por temporada y la serie por ronda,
// de forma que los consumidores (dashboards, reportes) puedan recuperarlos
// sin re-ejecutar el análisis.
type ResultStore interface {
	// SaveResult hace upsert del resultado de una temporada junto con su serie.
	SaveResult(ctx context.Context, result *domain.AnalysisResult) error

	// Result recupera el resultado escalar de una temporada, sin serie.
	Result(ctx context.Context, seasonID string) (*domain.AnalysisResult, error)

	// Series recupera la serie por ronda de una temporada ya analizada.
	Series(ctx context.Context, seasonID string) ([]domain.RoundPoint, error)

	// Close cierra la conexión limpiamente.
	Close() error
}
