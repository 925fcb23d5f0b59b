package ports

import "github.com/alejandrodnm/leaguebalance/internal/domain"

// StrengthEstimator produce el mapa equipo -> fuerza de una temporada.
// Dos implementaciones intercambiables (ranking estático, forma reciente);
// la configuración decide cuál se usa, no una jerarquía de tipos.
//
// Un mapa vacío no es un error: significa "sin señal" y degrada la simulación
// a las tasas globales.
type StrengthEstimator interface {
	Estimate(season *domain.Season) (domain.TeamStrengths, error)
	Method() domain.StrengthMethod
}
