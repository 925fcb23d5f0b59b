package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del analizador.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Batch    BatchConfig    `yaml:"batch"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// AnalysisConfig controla el motor de análisis. Los umbrales 80/20 y de
// persistencia son heurísticos: configurables a propósito.
type AnalysisConfig struct {
	Alpha                float64 `yaml:"alpha"`
	Simulations          int     `yaml:"simulations"`
	StrengthMethod       string  `yaml:"strength_method"` // none | static | dynamic
	RankingBlend         float64 `yaml:"ranking_blend"`   // peso de la temporada anterior
	HomeAdvantage        float64 `yaml:"home_advantage"`
	DominantFraction     float64 `yaml:"dominant_fraction"`
	DominantShare        float64 `yaml:"dominant_share"`
	PersistenceMin       float64 `yaml:"persistence_min"`
	PersistenceMinRanked float64 `yaml:"persistence_min_ranked"`
}

// BatchConfig controla la ejecución del lote.
type BatchConfig struct {
	Mode                      string `yaml:"mode"`    // seq | parallel | resume
	Workers                   int    `yaml:"workers"` // 0 = NumCPU
	Checkpoint                string `yaml:"checkpoint"`
	CheckpointIntervalSeconds int    `yaml:"checkpoint_interval_seconds"`
}

// StorageConfig controla dónde se persisten los resultados.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// CheckpointInterval devuelve el intervalo mínimo entre flushes de checkpoint.
func (c *Config) CheckpointInterval() time.Duration {
	return time.Duration(c.Batch.CheckpointIntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Analysis.Alpha <= 0 || cfg.Analysis.Alpha >= 1 {
		cfg.Analysis.Alpha = 0.05
	}
	if cfg.Analysis.Simulations <= 0 {
		cfg.Analysis.Simulations = 500
	}
	if cfg.Analysis.StrengthMethod == "" {
		cfg.Analysis.StrengthMethod = "static"
	}
	if cfg.Analysis.RankingBlend <= 0 || cfg.Analysis.RankingBlend > 1 {
		cfg.Analysis.RankingBlend = 0.5
	}
	if cfg.Analysis.HomeAdvantage <= 0 {
		cfg.Analysis.HomeAdvantage = 0.1
	}
	if cfg.Analysis.DominantFraction <= 0 || cfg.Analysis.DominantFraction >= 1 {
		cfg.Analysis.DominantFraction = 0.2
	}
	if cfg.Analysis.DominantShare <= 0 || cfg.Analysis.DominantShare >= 1 {
		cfg.Analysis.DominantShare = 0.8
	}
	if cfg.Analysis.PersistenceMin <= 0 || cfg.Analysis.PersistenceMin > 1 {
		cfg.Analysis.PersistenceMin = 0.70
	}
	if cfg.Analysis.PersistenceMinRanked <= 0 || cfg.Analysis.PersistenceMinRanked > 1 {
		cfg.Analysis.PersistenceMinRanked = 0.75
	}
	if cfg.Batch.Mode == "" {
		cfg.Batch.Mode = "seq"
	}
	if cfg.Batch.Checkpoint == "" {
		cfg.Batch.Checkpoint = "leaguebalance.checkpoint.json"
	}
	if cfg.Batch.CheckpointIntervalSeconds <= 0 {
		cfg.Batch.CheckpointIntervalSeconds = 30
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "leaguebalance.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
