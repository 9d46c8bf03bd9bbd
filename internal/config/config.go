package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Data     DataConfig     `yaml:"data"`
	Forecast ForecastConfig `yaml:"forecast"`
	Seasonal SeasonalConfig `yaml:"seasonal"`
	Output   OutputConfig   `yaml:"output"`
}

type DataConfig struct {
	// CSVPath overrides the embedded revenue series when set.
	CSVPath string `yaml:"csv_path" env:"DATA_CSV_PATH"`
}

type ForecastConfig struct {
	Horizon         int     `yaml:"horizon" env:"FORECAST_HORIZON" env-default:"1"`
	ConfidenceLevel float64 `yaml:"confidence_level" env:"FORECAST_CONFIDENCE_LEVEL" env-default:"0.95"`
}

type SeasonalConfig struct {
	Drift         bool    `yaml:"drift" env:"SEASONAL_DRIFT" env-default:"false"`
	MaxIterations int     `yaml:"max_iterations" env:"SEASONAL_MAX_ITERATIONS" env-default:"200"`
	Tolerance     float64 `yaml:"tolerance" env:"SEASONAL_TOLERANCE" env-default:"1e-9"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir" env:"OUTPUT_DIR" env-default:"out"`
	File string `yaml:"file" env:"OUTPUT_FILE" env-default:"forecast.png"`
}

// MustLoad reads the config from the file given via -config or
// CONFIG_PATH; with no path set, defaults and environment variables
// alone configure the run.
func MustLoad() *Config {
	return MustLoadPath(fetchConfigPath())
}

func MustLoadPath(configPath string) *Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from environment: " + err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "config path")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
