package config

import "errors"

var (
	ErrReadingConfigFile    = errors.New("failed to read config file")
	ErrUnmarshallingConfig  = errors.New("failed to unmarshal config")
	ErrConfigFileMissing    = errors.New("config file not found")
	ErrEmptyKafkaBrokers    = errors.New("kafka brokers list cannot be empty")
	ErrEmptyKafkaTopic      = errors.New("kafka topic cannot be empty")
	ErrEmptyKafkaGroupID    = errors.New("kafka groupID cannot be empty")
	ErrInvalidWorkerCount   = errors.New("pipeline workers must be positive")
	ErrInvalidChannelBuffer = errors.New("pipeline channelBuffer must be positive")
	ErrInvalidBinWidth      = errors.New("analysis binWidth must be positive")
	ErrInvalidBinMode       = errors.New("analysis binMode must be \"rate\" or \"count\"")
	ErrInvalidThresholds    = errors.New("analysis thresholds must be positive with eclipse below flare")
	ErrInvalidMinRunLength  = errors.New("analysis minRunLength must be at least 1")
	ErrInvalidPSDSigma      = errors.New("analysis psdSigma must be positive")
	ErrInvalidTrendConfig   = errors.New("analysis trend parameters out of range")
)
