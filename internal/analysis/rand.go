package analysis

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand crea un generador PCG sembrado con entropía del sistema. No hay
// contrato de reproducibilidad entre ejecuciones: quien la necesite (tests)
// inyecta su propio *rand.Rand con semilla fija.
func NewRand() *rand.Rand {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Sin entropía del sistema no hay nada razonable que hacer.
		panic("analysis.NewRand: " + err.Error())
	}
	seed1 := binary.LittleEndian.Uint64(buf[:8])
	seed2 := binary.LittleEndian.Uint64(buf[8:])
	return rand.New(rand.NewPCG(seed1, seed2))
}
