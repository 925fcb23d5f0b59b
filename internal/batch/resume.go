package batch

// resume.go — lote reanudable con checkpoint versionado.
//
// El checkpoint es JSON estructurado {version, run_id, completados, saltadas,
// parciales} en vez de un volcado opaco de objetos: sobrevive a cambios de
// proceso y se puede inspeccionar a mano. Un checkpoint ausente o corrupto
// significa "empezar de cero", nunca es fatal. Se borra al completar limpio.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// checkpointVersion se compara en la carga: una versión desconocida descarta
// el archivo con un warn.
const checkpointVersion = 1

// Checkpoint es el estado persistido de un lote interrumpible. Las temporadas
// fallidas se guardan con su causa: una reanudación las sigue reportando como
// saltadas en vez de omitirlas en silencio.
type Checkpoint struct {
	Version   int                      `json:"version"`
	RunID     string                   `json:"run_id"`
	UpdatedAt time.Time                `json:"updated_at"`
	Completed []string                 `json:"completed"`
	Skipped   map[string]string        `json:"skipped,omitempty"`
	Results   []*domain.AnalysisResult `json:"results"`
}

// Resumable analiza el lote persistiendo progreso en path. Las temporadas ya
// completadas (o falladas) en un checkpoint previo no se recalculan; las
// falladas reaparecen en el resumen como saltadas. interval limita la
// frecuencia de flush a disco; el último flush es incondicional.
func (r *Runner) Resumable(ctx context.Context, seasonIDs []string, path string, interval time.Duration) (*Summary, error) {
	cp := loadCheckpoint(path)
	done := make(map[string]bool, len(cp.Completed)+len(cp.Skipped))
	for _, id := range cp.Completed {
		done[id] = true
	}

	summary := newSummary()
	summary.Results = append(summary.Results, cp.Results...)
	for id, cause := range cp.Skipped {
		done[id] = true
		summary.Skipped[id] = errors.New(cause)
	}
	if len(done) > 0 {
		slog.Info("resuming batch from checkpoint",
			"run_id", cp.RunID,
			"completed", len(cp.Completed),
			"skipped", len(cp.Skipped),
			"path", path,
		)
	}

	if interval <= 0 {
		interval = 30 * time.Second
	}
	flushLimiter := rate.NewLimiter(rate.Every(interval), 1)

	for _, id := range seasonIDs {
		if done[id] {
			continue
		}
		if err := ctx.Err(); err != nil {
			// Flush final antes de salir: lo hecho hasta aquí se conserva.
			writeCheckpoint(path, cp)
			return summary, fmt.Errorf("batch.Resumable: %w", err)
		}

		result, err := r.runOne(ctx, id)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			// Cancelación a mitad de temporada: no es un fallo de la
			// temporada, la siguiente pasada la reintenta.
			writeCheckpoint(path, cp)
			return summary, fmt.Errorf("batch.Resumable: %w", err)
		}
		summary.record(id, result, err)

		if err != nil {
			if cp.Skipped == nil {
				cp.Skipped = make(map[string]string)
			}
			cp.Skipped[id] = err.Error()
		} else {
			cp.Completed = append(cp.Completed, id)
			cp.Results = append(cp.Results, result)
		}
		if flushLimiter.Allow() {
			writeCheckpoint(path, cp)
		}
	}
	summary.sort()

	// Completado limpio: el checkpoint ya no aporta nada.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove checkpoint", "path", path, "err", err)
	}
	return summary, nil
}

// loadCheckpoint lee el checkpoint si existe y es válido; cualquier problema
// degrada a un checkpoint nuevo con run id fresco.
func loadCheckpoint(path string) *Checkpoint {
	fresh := &Checkpoint{Version: checkpointVersion, RunID: uuid.NewString()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("unreadable checkpoint, starting fresh", "path", path, "err", err)
		}
		return fresh
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		slog.Warn("corrupt checkpoint, starting fresh", "path", path, "err", err)
		return fresh
	}
	if cp.Version != checkpointVersion {
		slog.Warn("checkpoint version mismatch, starting fresh",
			"path", path,
			"got", cp.Version,
			"want", checkpointVersion,
		)
		return fresh
	}
	return &cp
}

// writeCheckpoint persiste de forma atómica: archivo temporal + rename.
func writeCheckpoint(path string, cp *Checkpoint) {
	cp.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cp)
	if err != nil {
		slog.Error("failed to encode checkpoint", "err", err)
		return
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		slog.Error("failed to write checkpoint", "path", tmp, "err", err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		slog.Error("failed to replace checkpoint", "path", path, "err", err)
	}
}
