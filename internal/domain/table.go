package domain

// Table es una tabla plana tal como sale del lector CSV: cabecera + filas de
// strings sin interpretar. El validador la convierte a tipos del dominio.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex devuelve la posición de una columna, -1 si no existe.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RankingRow es una línea validada de la tabla de clasificaciones históricas.
// Points es opcional: NaN-free, HasPoints marca su presencia.
type RankingRow struct {
	Season     string
	Tournament string
	Position   int
	Team       string
	Points     float64
	HasPoints  bool
}
