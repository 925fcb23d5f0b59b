package analysis

// Config concentra los parámetros del motor. Los umbrales heurísticos
// (referencia 80/20, persistencia 0.70/0.75) son configurables a propósito:
// son convenciones, no invariantes.
type Config struct {
	// Alpha es el nivel de significancia del envelope: el límite superior es
	// el percentil (1-Alpha) del ensemble por ronda.
	Alpha float64

	// Simulations es el número de temporadas simuladas del modelo nulo.
	Simulations int

	// HomeAdvantage se suma a la fuerza del local antes de la logística.
	HomeAdvantage float64

	// Steepness controla la pendiente de la logística fuerza -> probabilidad.
	Steepness float64

	// SkillBlend pondera la probabilidad basada en fuerzas frente a la tasa
	// global de victorias locales (0.7 = 70% fuerzas, 30% global).
	SkillBlend float64

	// DominantFraction y DominantShare definen la referencia de varianza
	// máxima: el techo teórico asume que ceil(DominantFraction*N) equipos
	// concentran DominantShare de los puntos repartidos.
	DominantFraction float64
	DominantShare    float64

	// PersistenceMin es la fracción mínima de rondas restantes por encima del
	// envelope para confirmar un punto de virada; PersistenceMinRanked aplica
	// cuando la simulación usó fuerzas (criterio más exigente).
	PersistenceMin       float64
	PersistenceMinRanked float64

	// RankingBlend pondera la clasificación de la temporada anterior frente a
	// la actual en el estimador estático (0.5 = 50/50).
	RankingBlend float64
}

// DefaultConfig devuelve los parámetros de referencia del motor.
func DefaultConfig() Config {
	return Config{
		Alpha:                0.05,
		Simulations:          500,
		HomeAdvantage:        0.1,
		Steepness:            3,
		SkillBlend:           0.7,
		DominantFraction:     0.2,
		DominantShare:        0.8,
		PersistenceMin:       0.70,
		PersistenceMinRanked: 0.75,
		RankingBlend:         0.5,
	}
}
