package storage

// sqlite.go — persistencia de resultados y series por ronda.
//
// Estrategia:
//   - `results`: UNA fila por temporada (UPSERT), todos los campos escalares
//     del análisis. Es la fuente del resumen tabular.
//   - `series`: una fila por (temporada, ronda) con observado/envelope/flag
//     de punto de virada. Los dashboards la leen sin re-ejecutar el análisis.
//   - El guardado es transaccional: resultado y serie, o nada.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por temporada analizada
CREATE TABLE IF NOT EXISTS results (
    season_id         TEXT PRIMARY KEY,
    league            TEXT NOT NULL,
    season            TEXT NOT NULL,
    teams             INTEGER NOT NULL,
    rounds            INTEGER NOT NULL,
    method            TEXT NOT NULL,
    strength_variance REAL NOT NULL DEFAULT 0,
    ph                REAL NOT NULL DEFAULT 0,
    pd                REAL NOT NULL DEFAULT 0,
    pa                REAL NOT NULL DEFAULT 0,
    final_imbalance   REAL NOT NULL DEFAULT 0,
    mean_sim_final    REAL NOT NULL DEFAULT 0,
    turning_round     INTEGER,
    turning_fraction  REAL,
    competitive       INTEGER NOT NULL DEFAULT 1,
    lock_p1           INTEGER, lock_p2 INTEGER, lock_p3 INTEGER, lock_p4 INTEGER,
    lock_b1           INTEGER, lock_b2 INTEGER, lock_b3 INTEGER, lock_b4 INTEGER,
    analyzed_at       DATETIME NOT NULL
);

-- Serie por ronda, clave natural (temporada, ronda)
CREATE TABLE IF NOT EXISTS series (
    season_id TEXT    NOT NULL,
    round     INTEGER NOT NULL,
    observed  REAL    NOT NULL,
    envelope  REAL    NOT NULL,
    turning   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (season_id, round)
);

CREATE INDEX IF NOT EXISTS idx_results_league ON results(league, season);
`

// SQLiteStore implementa ports.ResultStore usando SQLite (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica el
// schema. ":memory:" sirve para tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveResult hace upsert del resultado y reescribe su serie completa en una
// sola transacción.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *domain.AnalysisResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveResult: begin tx: %w", err)
	}
	defer tx.Rollback()

	var turningRound, turningFraction any
	if r.TurningPoint != nil {
		turningRound = r.TurningPoint.Round
		turningFraction = r.TurningPoint.Fraction
	}
	competitive := 0
	if r.IsCompetitive() {
		competitive = 1
	}

	topLocks := lockColumns(r.PositionLocks, r.TopSlots())
	bottomLocks := lockColumns(r.PositionLocks, r.BottomSlots())

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO results
			(season_id, league, season, teams, rounds, method, strength_variance,
			 ph, pd, pa, final_imbalance, mean_sim_final,
			 turning_round, turning_fraction, competitive,
			 lock_p1, lock_p2, lock_p3, lock_p4,
			 lock_b1, lock_b2, lock_b3, lock_b4, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(season_id) DO UPDATE SET
			league            = excluded.league,
			season            = excluded.season,
			teams             = excluded.teams,
			rounds            = excluded.rounds,
			method            = excluded.method,
			strength_variance = excluded.strength_variance,
			ph                = excluded.ph,
			pd                = excluded.pd,
			pa                = excluded.pa,
			final_imbalance   = excluded.final_imbalance,
			mean_sim_final    = excluded.mean_sim_final,
			turning_round     = excluded.turning_round,
			turning_fraction  = excluded.turning_fraction,
			competitive       = excluded.competitive,
			lock_p1 = excluded.lock_p1, lock_p2 = excluded.lock_p2,
			lock_p3 = excluded.lock_p3, lock_p4 = excluded.lock_p4,
			lock_b1 = excluded.lock_b1, lock_b2 = excluded.lock_b2,
			lock_b3 = excluded.lock_b3, lock_b4 = excluded.lock_b4,
			analyzed_at       = excluded.analyzed_at
	`,
		r.SeasonID, r.League, r.Season, r.Teams, r.Rounds, string(r.Method),
		r.StrengthVariance, r.Rates.Home, r.Rates.Draw, r.Rates.Away,
		r.FinalImbalance, r.MeanSimFinal,
		turningRound, turningFraction, competitive,
		topLocks[0], topLocks[1], topLocks[2], topLocks[3],
		bottomLocks[0], bottomLocks[1], bottomLocks[2], bottomLocks[3],
		// Texto con layout propio: la lectura no depende del formato que el
		// driver elija para time.Time.
		r.AnalyzedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("storage.SaveResult: upsert result %s: %w", r.SeasonID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM series WHERE season_id = ?`, r.SeasonID); err != nil {
		return fmt.Errorf("storage.SaveResult: clear series %s: %w", r.SeasonID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO series (season_id, round, observed, envelope, turning)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveResult: prepare series: %w", err)
	}
	defer stmt.Close()

	for _, p := range r.Series {
		turning := 0
		if p.IsTurningPoint {
			turning = 1
		}
		if _, err := stmt.ExecContext(ctx, r.SeasonID, p.Round, p.Observed, p.EnvelopeUpper, turning); err != nil {
			return fmt.Errorf("storage.SaveResult: insert series %s r%d: %w", r.SeasonID, p.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveResult: commit: %w", err)
	}
	return nil
}

// Result recupera los campos escalares de una temporada (serie aparte).
func (s *SQLiteStore) Result(ctx context.Context, seasonID string) (*domain.AnalysisResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT season_id, league, season, teams, rounds, method, strength_variance,
		       ph, pd, pa, final_imbalance, mean_sim_final,
		       turning_round, turning_fraction,
		       lock_p1, lock_p2, lock_p3, lock_p4,
		       lock_b1, lock_b2, lock_b3, lock_b4, analyzed_at
		FROM results WHERE season_id = ?
	`, seasonID)

	var r domain.AnalysisResult
	var method string
	var turningRound sql.NullInt64
	var turningFraction sql.NullFloat64
	var locks [8]sql.NullInt64
	var analyzedAt string

	if err := row.Scan(
		&r.SeasonID, &r.League, &r.Season, &r.Teams, &r.Rounds, &method,
		&r.StrengthVariance, &r.Rates.Home, &r.Rates.Draw, &r.Rates.Away,
		&r.FinalImbalance, &r.MeanSimFinal,
		&turningRound, &turningFraction,
		&locks[0], &locks[1], &locks[2], &locks[3],
		&locks[4], &locks[5], &locks[6], &locks[7],
		&analyzedAt,
	); err != nil {
		return nil, fmt.Errorf("storage.Result: %s: %w", seasonID, err)
	}

	r.Method = domain.StrengthMethod(method)
	analyzed, err := time.Parse(time.RFC3339Nano, analyzedAt)
	if err != nil {
		return nil, fmt.Errorf("storage.Result: %s: parse analyzed_at %q: %w", seasonID, analyzedAt, err)
	}
	r.AnalyzedAt = analyzed
	if turningRound.Valid {
		r.TurningPoint = &domain.TurningPoint{
			Round:    int(turningRound.Int64),
			Fraction: turningFraction.Float64,
		}
	}

	r.PositionLocks = make(map[int]int)
	for i, slot := range r.TopSlots() {
		if i < 4 && locks[i].Valid {
			r.PositionLocks[slot] = int(locks[i].Int64)
		}
	}
	for i, slot := range r.BottomSlots() {
		if i < 4 && locks[4+i].Valid {
			r.PositionLocks[slot] = int(locks[4+i].Int64)
		}
	}
	return &r, nil
}

// Series recupera la serie por ronda en orden ascendente.
func (s *SQLiteStore) Series(ctx context.Context, seasonID string) ([]domain.RoundPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT round, observed, envelope, turning
		FROM series WHERE season_id = ? ORDER BY round ASC
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("storage.Series: query %s: %w", seasonID, err)
	}
	defer rows.Close()

	var series []domain.RoundPoint
	for rows.Next() {
		var p domain.RoundPoint
		var turning int
		if err := rows.Scan(&p.Round, &p.Observed, &p.EnvelopeUpper, &turning); err != nil {
			return nil, fmt.Errorf("storage.Series: scan %s: %w", seasonID, err)
		}
		p.IsTurningPoint = turning == 1
		series = append(series, p)
	}
	return series, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// lockColumns aplana los locks de los slots dados a 4 columnas nullable.
func lockColumns(locks map[int]int, slots []int) [4]any {
	var out [4]any
	for i := 0; i < 4; i++ {
		if i < len(slots) {
			if round, ok := locks[slots[i]]; ok {
				out[i] = round
			}
		}
	}
	return out
}
