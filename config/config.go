package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del backtester.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Strategy StrategyConfig `yaml:"strategy"`
	Engine   EngineConfig   `yaml:"engine"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig controla la capa de adquisición de datos.
type DataConfig struct {
	BinanceBase   string `yaml:"binance_base"`
	FearGreedBase string `yaml:"feargreed_base"`
	FromYear      int    `yaml:"from_year"` // primer año de histórico a descargar
}

// StrategyConfig son los parámetros por defecto de la estrategia.
type StrategyConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	BuyThreshold   int     `yaml:"buy_threshold"`  // compra si índice <= X
	SellThreshold  int     `yaml:"sell_threshold"` // vende si índice >= X
}

// EngineConfig controla el motor de backtesting.
type EngineConfig struct {
	Workers int `yaml:"workers"` // 0 = runtime.NumCPU()
}

// StorageConfig controla dónde se cachea la serie descargada.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del entorno sobreescriben los del YAML. Si el archivo
// no existe se usan solo defaults y entorno.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
		// sin archivo: defaults + entorno
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FNGBOT_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("FNGBOT_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Strategy.InitialCapital = capital
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Data.BinanceBase == "" {
		cfg.Data.BinanceBase = "https://api.binance.com"
	}
	if cfg.Data.FearGreedBase == "" {
		cfg.Data.FearGreedBase = "https://api.alternative.me"
	}
	if cfg.Data.FromYear <= 0 {
		cfg.Data.FromYear = 2018 // el índice FNG empieza en febrero de 2018
	}
	if cfg.Strategy.InitialCapital <= 0 {
		cfg.Strategy.InitialCapital = 10000
	}
	if cfg.Strategy.BuyThreshold <= 0 {
		cfg.Strategy.BuyThreshold = 50
	}
	if cfg.Strategy.SellThreshold <= 0 {
		cfg.Strategy.SellThreshold = 90
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "fngbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// validate comprueba los rangos de los parámetros de estrategia.
func validate(cfg *Config) error {
	if cfg.Strategy.BuyThreshold < 0 || cfg.Strategy.BuyThreshold > 100 {
		return fmt.Errorf("buy_threshold %d out of range [0,100]", cfg.Strategy.BuyThreshold)
	}
	if cfg.Strategy.SellThreshold < 0 || cfg.Strategy.SellThreshold > 100 {
		return fmt.Errorf("sell_threshold %d out of range [0,100]", cfg.Strategy.SellThreshold)
	}
	return nil
}
