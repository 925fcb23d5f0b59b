package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// Console implementa ports.Notifier: una línea compacta por temporada y,
// opcionalmente, la tabla resumen completa del batch.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// SeasonDone imprime el desenlace de una temporada en una línea.
func (c *Console) SeasonDone(_ context.Context, result *domain.AnalysisResult, err error) {
	now := time.Now().Format("15:04:05")
	if err != nil {
		fmt.Fprintf(c.out, "[%s] SKIPPED: %v\n", now, err)
		return
	}

	verdict := "COMPETITIVE"
	if tp := result.TurningPoint; tp != nil {
		verdict = fmt.Sprintf("NOT COMPETITIVE tp=r%d (%.1f%%)", tp.Round, tp.Fraction*100)
	}
	fmt.Fprintf(c.out, "[%s] %s %s | %d teams %d rounds | %s | %s | P1 locked r%d\n",
		now,
		compactName(result.League, 28), result.Season,
		result.Teams, result.Rounds,
		methodLabel(result.Method),
		verdict,
		result.PositionLocks[1],
	)
}

// Summary imprime el resumen del batch: tabla completa si se pidió, conteo
// compacto si no, y siempre la lista explícita de temporadas saltadas.
func (c *Console) Summary(_ context.Context, results []*domain.AnalysisResult, skipped map[string]error) error {
	if c.table && len(results) > 0 {
		c.printTable(results)
	} else {
		c.printCompact(results)
	}

	if len(skipped) > 0 {
		ids := make([]string, 0, len(skipped))
		for id := range skipped {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Fprintf(c.out, "\nSKIPPED (%d):\n", len(ids))
		for _, id := range ids {
			fmt.Fprintf(c.out, "  %s: %v\n", id, skipped[id])
		}
	}
	return nil
}

// printCompact resume el batch en una línea.
func (c *Console) printCompact(results []*domain.AnalysisResult) {
	competitive := 0
	for _, r := range results {
		if r.IsCompetitive() {
			competitive++
		}
	}
	fmt.Fprintf(c.out, "%d seasons analyzed | competitive: %d | not competitive: %d\n",
		len(results), competitive, len(results)-competitive)
}

// printTable imprime la tabla resumen, una fila por temporada.
func (c *Console) printTable(results []*domain.AnalysisResult) {
	table := tablewriter.NewWriter(c.out)
	table.Header("League", "Season", "Teams", "Rnds", "Method", "P(H/D/A)", "Final imb", "Turning pt", "P1 lock", "Competitive")

	for _, r := range results {
		turning := "-"
		if tp := r.TurningPoint; tp != nil {
			turning = fmt.Sprintf("r%d (%.0f%%)", tp.Round, tp.Fraction*100)
		}
		competitive := "yes"
		if !r.IsCompetitive() {
			competitive = "NO"
		}

		table.Append(
			r.League,
			r.Season,
			fmt.Sprintf("%d", r.Teams),
			fmt.Sprintf("%d", r.Rounds),
			methodLabel(r.Method),
			fmt.Sprintf("%.2f/%.2f/%.2f", r.Rates.Home, r.Rates.Draw, r.Rates.Away),
			fmt.Sprintf("%.4f", r.FinalImbalance),
			turning,
			fmt.Sprintf("r%d", r.PositionLocks[1]),
			competitive,
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  P(H/D/A) = tasas globales local/empate/visitante")
	fmt.Fprintln(c.out, "  Turning pt = primera ronda persistentemente fuera del envelope")
	fmt.Fprintln(c.out, "  P1 lock = ronda en que el primer puesto queda cerrado")
}

func methodLabel(m domain.StrengthMethod) string {
	switch m {
	case domain.MethodStatic:
		return "rankings"
	case domain.MethodDynamic:
		return "recent form"
	default:
		return "no skill signal"
	}
}

// compactName recorta nombres largos de liga para la línea compacta. El corte
// es por runas: los nombres con acentos no pueden quedar partidos a mitad de
// carácter.
func compactName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
