// Package csvsource lee las tablas planas (partidos, clasificaciones) que
// produce el pipeline upstream. Solo parsea a strings: la interpretación y
// limpieza es cosa del validador del motor.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/alejandrodnm/leaguebalance/internal/domain"
)

// ReadTable carga un CSV con cabecera. Filas con número de campos distinto a
// la cabecera se aceptan tal cual (el validador las descartará si procede).
func ReadTable(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("csvsource.ReadTable: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // upstream a veces exporta columnas extra sueltas
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("csvsource.ReadTable: parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("csvsource.ReadTable: %q: empty file", path)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = canonicalColumn(col)
	}
	return domain.Table{Columns: header, Rows: records[1:]}, nil
}

// columnAliases traduce los nombres históricos del scraper a los canónicos
// del motor.
var columnAliases = map[string]string{
	"rodada": "round",
	"#":      "position",
	"pts":    "points",
}

func canonicalColumn(col string) string {
	c := strings.TrimSpace(strings.ToLower(col))
	if alias, ok := columnAliases[c]; ok {
		return alias
	}
	return c
}
