package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay" mapstructure:"overlay"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// OverlayConfig holds the pipeline defaults; flags override per run.
type OverlayConfig struct {
	GroupBy    string `yaml:"group_by" mapstructure:"group_by"`
	Reduction  string `yaml:"reduction" mapstructure:"reduction"`
	CRSCheck   string `yaml:"crs_check" mapstructure:"crs_check"`
	MetricName string `yaml:"metric_name" mapstructure:"metric_name"`
}

// RenderConfig configures choropleth output.
type RenderConfig struct {
	Width     int    `yaml:"width" mapstructure:"width"`
	Height    int    `yaml:"height" mapstructure:"height"`
	Classes   int    `yaml:"classes" mapstructure:"classes"`
	Scheme    string `yaml:"scheme" mapstructure:"scheme"`
	Ramp      string `yaml:"ramp" mapstructure:"ramp"`
	StyleFile string `yaml:"style_file" mapstructure:"style_file"`
}

// StoreConfig configures run-history persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("overlay.reduction", "sum")
	v.SetDefault("overlay.crs_check", "strict")
	v.SetDefault("overlay.metric_name", "metric")
	v.SetDefault("render.width", 1024)
	v.SetDefault("render.height", 768)
	v.SetDefault("render.classes", 5)
	v.SetDefault("render.scheme", "quantile")
	v.SetDefault("render.ramp", "ylorrd")
	v.SetDefault("store.path", "overlay.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
