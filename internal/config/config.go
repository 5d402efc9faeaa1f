package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Filings  FilingsConfig  `yaml:"filings" mapstructure:"filings"`
	Index    IndexConfig    `yaml:"index" mapstructure:"index"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// FilingsConfig locates the Form 5500 header and Schedule A extracts.
type FilingsConfig struct {
	HeadersPath    string `yaml:"headers_path" mapstructure:"headers_path"`
	ScheduleAPath  string `yaml:"scheda_path" mapstructure:"scheda_path"`
	HeadersPattern string `yaml:"headers_pattern" mapstructure:"headers_pattern"`
	ScheduleAPatt  string `yaml:"scheda_pattern" mapstructure:"scheda_pattern"`
	Charset        string `yaml:"charset" mapstructure:"charset"`
}

// HeadersPathForYear resolves the header extract path for a filing year.
// Year zero means "use the configured path as-is".
func (c FilingsConfig) HeadersPathForYear(year int) string {
	if year == 0 {
		return c.HeadersPath
	}
	return fmt.Sprintf(c.HeadersPattern, year)
}

// ScheduleAPathForYear resolves the Schedule A extract path for a filing year.
func (c FilingsConfig) ScheduleAPathForYear(year int) string {
	if year == 0 {
		return c.ScheduleAPath
	}
	return fmt.Sprintf(c.ScheduleAPatt, year)
}

// IndexConfig configures Schedule A index construction.
type IndexConfig struct {
	// Partitions controls parallel index builds; 0 means one per CPU.
	Partitions int `yaml:"partitions" mapstructure:"partitions"`
}

// ClassifyConfig configures classification output.
type ClassifyConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
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
	v.SetEnvPrefix("BENEFITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("filings.headers_path", "f_5500_2024_latest.csv")
	v.SetDefault("filings.scheda_path", "F_SCH_A_2024_latest.csv")
	v.SetDefault("filings.headers_pattern", "f_5500_%d_latest.csv")
	v.SetDefault("filings.scheda_pattern", "F_SCH_A_%d_latest.csv")
	v.SetDefault("filings.charset", "")
	v.SetDefault("index.partitions", 0)
	v.SetDefault("classify.format", "text")
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
