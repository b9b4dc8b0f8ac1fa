package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultKafkaGroupID     = "astrolens-default-group"
	defaultWorkers          = 4
	defaultChannelBuffer    = 100
	defaultBinWidth         = 500.0 // seconds, the conventional lightcurve binning
	defaultBinMode          = "rate"
	defaultFlareThreshold   = 3.0
	defaultEclipseThreshold = 0.2
	defaultMinRunLength     = 2
	defaultPSDSigma         = 3.0
	defaultTrendGroupSize   = 10
	defaultTrendSigma       = 3.0
	defaultTrendCluster     = 0.3
	defaultEclipseSlopeMax  = 1.0
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultLogFileEnabled   = false
	defaultLogDirectory     = "log"
	defaultLogFilename      = "app.log"
	defaultLogMaxSizeMB     = 100
	defaultLogMaxBackups    = 3
	defaultLogMaxAgeDays    = 7
	defaultLogCompress      = false

	// Environment variable prefix
	envPrefix = "ASTROLENS"
)

type Config struct {
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

type PipelineConfig struct {
	Workers       int `mapstructure:"workers"`
	ChannelBuffer int `mapstructure:"channelBuffer"`
}

// AnalysisConfig carries the validated, named parameters of the analysis
// engine: binning, state detection, spectral estimation and trend scans.
type AnalysisConfig struct {
	BinWidth         float64     `mapstructure:"binWidth"` // seconds
	BinMode          string      `mapstructure:"binMode"`  // "rate" or "count"
	FlareThreshold   float64     `mapstructure:"flareThreshold"`
	EclipseThreshold float64     `mapstructure:"eclipseThreshold"`
	MinRunLength     int         `mapstructure:"minRunLength"`
	PSDSigma         float64     `mapstructure:"psdSigma"`
	Trend            TrendConfig `mapstructure:"trend"`
}

type TrendConfig struct {
	GroupSize        int     `mapstructure:"groupSize"`
	Sigma            float64 `mapstructure:"sigma"`
	ClusterThreshold float64 `mapstructure:"clusterThreshold"`
	EclipseSlopeMax  float64 `mapstructure:"eclipseSlopeMax"`
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`    // Max size in MB
	MaxBackups         int    `mapstructure:"maxBackups"` // Max backup files
	MaxAge             int    `mapstructure:"maxAge"`     // Max days to retain
	Compress           bool   `mapstructure:"compress"`   // Compress rotated files?
}

// Load initializes viper, reads config, applies defaults, unmarshals, and validates.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)

	// Set default values before reading the config source .yaml
	setDefaults(v)

	// Read configuration from file (error if mandatory file is missing)
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal the configuration
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configureViper sets up the viper instance for file and environment variables.
func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults applies default configuration values using Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("kafka.groupID", defaultKafkaGroupID)
	v.SetDefault("pipeline.workers", defaultWorkers)
	v.SetDefault("pipeline.channelBuffer", defaultChannelBuffer)
	v.SetDefault("analysis.binWidth", defaultBinWidth)
	v.SetDefault("analysis.binMode", defaultBinMode)
	v.SetDefault("analysis.flareThreshold", defaultFlareThreshold)
	v.SetDefault("analysis.eclipseThreshold", defaultEclipseThreshold)
	v.SetDefault("analysis.minRunLength", defaultMinRunLength)
	v.SetDefault("analysis.psdSigma", defaultPSDSigma)
	v.SetDefault("analysis.trend.groupSize", defaultTrendGroupSize)
	v.SetDefault("analysis.trend.sigma", defaultTrendSigma)
	v.SetDefault("analysis.trend.clusterThreshold", defaultTrendCluster)
	v.SetDefault("analysis.trend.eclipseSlopeMax", defaultEclipseSlopeMax)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", defaultLogFileEnabled)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
	v.SetDefault("log.compress", defaultLogCompress)
}

// readConfigFile attempts to read the configuration file specified in viper.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return ErrConfigFileMissing
		}
		return fmt.Errorf("%w: %w", ErrReadingConfigFile, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return ErrEmptyKafkaBrokers
	}
	if cfg.Kafka.Topic == "" {
		return ErrEmptyKafkaTopic
	}
	if cfg.Kafka.GroupID == "" {
		return ErrEmptyKafkaGroupID
	}
	if cfg.Pipeline.Workers < 1 {
		return ErrInvalidWorkerCount
	}
	if cfg.Pipeline.ChannelBuffer < 1 {
		return ErrInvalidChannelBuffer
	}
	return validateAnalysis(&cfg.Analysis)
}

func validateAnalysis(cfg *AnalysisConfig) error {
	if cfg.BinWidth <= 0 {
		return ErrInvalidBinWidth
	}
	if cfg.BinMode != "rate" && cfg.BinMode != "count" {
		return ErrInvalidBinMode
	}
	if cfg.FlareThreshold <= 0 || cfg.EclipseThreshold <= 0 ||
		cfg.EclipseThreshold >= cfg.FlareThreshold {
		return ErrInvalidThresholds
	}
	if cfg.MinRunLength < 1 {
		return ErrInvalidMinRunLength
	}
	if cfg.PSDSigma <= 0 {
		return ErrInvalidPSDSigma
	}
	if cfg.Trend.GroupSize < 2 {
		return ErrInvalidTrendConfig
	}
	if cfg.Trend.Sigma <= 0 {
		return ErrInvalidTrendConfig
	}
	if cfg.Trend.ClusterThreshold <= 0 || cfg.Trend.ClusterThreshold > 1 {
		return ErrInvalidTrendConfig
	}
	return nil
}
