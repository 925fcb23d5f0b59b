package analysis

// turning.go — detección del punto de virada.
//
// Una sola pasada izquierda-derecha, sin backtracking: el primer índice que
// supera el envelope, aguanta k rondas consecutivas por encima y mantiene la
// fracción mínima de rondas restantes por encima, gana. Determinista: cero
// aleatoriedad interna.

import (
	"math"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// FindTurningPoint busca la primera ronda donde el desequilibrio observado
// supera el envelope de forma persistente y significativa. ranked indica si
// la simulación usó fuerzas (umbral de persistencia más exigente). Devuelve
// nil si la temporada es competitiva.
func FindTurningPoint(observed, envelope []float64, totalRounds int, ranked bool, cfg Config) *domain.TurningPoint {
	if len(observed) == 0 || len(observed) != len(envelope) || totalRounds < 1 {
		return nil
	}

	// k adaptativo al tamaño del campeonato.
	k := int(math.Round(0.1 * float64(totalRounds)))
	if k < 3 {
		k = 3
	}

	minAbove := cfg.PersistenceMin
	if ranked {
		minAbove = cfg.PersistenceMinRanked
	}

	for idx := 0; idx < len(observed)-k; idx++ {
		if observed[idx] <= envelope[idx] {
			continue
		}

		// Las k rondas desde idx tienen que estar todas por encima.
		consecutive := 0
		for i := idx; i < idx+k && i < len(observed); i++ {
			if observed[i] <= envelope[i] {
				break
			}
			consecutive++
		}
		if consecutive < k {
			continue
		}

		// Y la cola completa desde idx tiene que sostenerlo.
		above := 0
		for i := idx; i < len(observed); i++ {
			if observed[i] > envelope[i] {
				above++
			}
		}
		if float64(above)/float64(len(observed)-idx) < minAbove {
			continue
		}

		round := idx + 1
		return &domain.TurningPoint{
			Round:    round,
			Fraction: float64(round) / float64(totalRounds),
		}
	}
	return nil
}
