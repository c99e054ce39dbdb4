// Package config loads, validates and persists the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/mkroman/soundcloud-grabber/internal/constants"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
	"github.com/mkroman/soundcloud-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the API key identifying the calling application.
	// It is attached as a query parameter to every outbound request.
	ClientID string `mapstructure:"client_id"`
	// OutputPath is the directory path where downloaded files will be saved.
	OutputPath string `mapstructure:"output_path"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// HTTPTimeout is the deadline applied to every API request (e.g., "60s").
	HTTPTimeout string `mapstructure:"http_timeout"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// ReplaceTracks indicates whether to replace existing track files.
	ReplaceTracks bool `mapstructure:"replace_tracks"`
	// APIBaseURL is the base URL for the SoundCloud API (set automatically).
	APIBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedHTTPTimeout is the parsed HTTP request deadline.
	ParsedHTTPTimeout time.Duration
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64
}

const (
	// APIBaseURL is the base URL for the SoundCloud API.
	APIBaseURL = "https://api.soundcloud.com"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".soundcloud-grabber.yaml"

	// DefaultHTTPTimeout is the request deadline used when http_timeout is not set.
	DefaultHTTPTimeout = "60s"

	// DefaultLogLevel is the logging level used when log_level is not set.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size (in bytes) for dumped requests in logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the API client ID is missing.
	ErrEmptyClientID = errors.New("client ID cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidHTTPTimeout indicates that the HTTP timeout setting is invalid.
	ErrInvalidHTTPTimeout = errors.New("http_timeout must be positive")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return ErrEmptyClientID
	}

	cfg.APIBaseURL = APIBaseURL

	logLevel := strings.TrimSpace(cfg.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(logLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	httpTimeout := strings.TrimSpace(cfg.HTTPTimeout)
	if httpTimeout == "" {
		httpTimeout = DefaultHTTPTimeout
	}

	parsedHTTPTimeout, err := time.ParseDuration(httpTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse HTTP timeout: %w", err)
	}

	if parsedHTTPTimeout <= 0 {
		return ErrInvalidHTTPTimeout
	}

	cfg.ParsedHTTPTimeout = parsedHTTPTimeout

	var parsedDownloadSpeedLimit uint64

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err = humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}
	}

	// io.CopyN accepts only int64 so we transform it safely in order to use it later.
	cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)

	if cfg.OutputPath == "" {
		cfg.OutputPath = "."
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.ClientID, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the client_id value in the node tree.
	updateClientIDInNode(&node, cfg.ClientID)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, clientID string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("client_id", clientID)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateClientIDInNode updates the client_id value in the YAML node tree.
func updateClientIDInNode(node *yaml.Node, clientID string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "client_id" {
			// Update the value while preserving style.
			valueNode.Value = clientID

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}
