package analysis

// lock.go — detección de posiciones matemáticamente cerradas.
//
// Un slot p queda bloqueado en la ronda r cuando, asumiendo que todo el mundo
// gana todos sus partidos restantes: (a) nadie por debajo alcanza los puntos
// del ocupante y (b) el ocupante no alcanza a nadie por encima. La última
// ronda cierra todos los slots por definición.

import (
	"sort"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// LockSlots devuelve los slots a analizar para un roster de n equipos:
// 1..4 y los cuatro últimos (n-3..n), sin duplicados y dentro de rango.
func LockSlots(n int) []int {
	seen := make(map[int]bool)
	var slots []int
	add := func(p int) {
		if p >= 1 && p <= n && !seen[p] {
			seen[p] = true
			slots = append(slots, p)
		}
	}
	for p := 1; p <= 4; p++ {
		add(p)
	}
	for p := n - 3; p <= n; p++ {
		add(p)
	}
	sort.Ints(slots)
	return slots
}

// PositionLocks calcula, por slot, la primera ronda en que el puesto queda
// cerrado. tables son las clasificaciones acumuladas por ronda (1..R) ya
// ordenadas de forma determinista. Independiente del modelo nulo: solo
// comparte las clasificaciones con la curva observada.
func PositionLocks(tables []domain.RoundTable, totalRounds int) map[int]int {
	locks := make(map[int]int)
	if len(tables) == 0 {
		return locks
	}

	n := len(tables[0].Rows)
	for _, slot := range LockSlots(n) {
		locks[slot] = totalRounds // la ronda final siempre cierra
		for _, table := range tables {
			if slotLocked(table, slot, totalRounds) {
				locks[slot] = table.Round
				break
			}
		}
	}
	return locks
}

// slotLocked evalúa el criterio de cierre para un slot en una ronda concreta.
func slotLocked(table domain.RoundTable, slot, totalRounds int) bool {
	rows := table.Rows
	if slot < 1 || slot > len(rows) {
		return false
	}
	remaining := 3 * (totalRounds - table.Round)
	occupant := rows[slot-1].Points

	// (a) nadie por debajo puede superar al ocupante, ni ganándolo todo.
	// Empatar en puntos no arrebata el puesto.
	for i := slot; i < len(rows); i++ {
		if rows[i].Points+remaining > occupant {
			return false
		}
	}
	// (b) el ocupante tampoco puede superar a nadie por encima.
	for i := 0; i < slot-1; i++ {
		if occupant+remaining > rows[i].Points {
			return false
		}
	}
	return true
}
