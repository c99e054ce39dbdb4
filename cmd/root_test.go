package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/constants"
)

const testBaseConfigContent = `
client_id: "config_client_id"
output_path: "/config/output"
log_level: "info"
http_timeout: "30s"
download_speed_limit: "500KB"
replace_tracks: false
`

// writeTestConfig writes the base configuration into a temp directory and
// loads it.
func writeTestConfig(t *testing.T) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(testBaseConfigContent),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// newTestFlagSet builds a command with the same flags as the root command.
func newTestFlagSet() *pflag.FlagSet {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().StringP("speed-limit", "s", "", "download speed limit")
	testCmd.Flags().BoolP("replace", "r", false, "replace existing files")

	return testCmd.Flags()
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
				assert.False(t, cfg.ReplaceTracks)
			},
		},
		{
			name: "output flag only - override output path",
			flags: map[string]string{
				"output": "/flag/output",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "speed-limit flag only - override speed limit",
			flags: map[string]string{
				"speed-limit": "1MB",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.Equal(t, "1MB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(1000*1000), cfg.ParsedDownloadSpeedLimit)
			},
		},
		{
			name: "replace flag only - override replace mode",
			flags: map[string]string{
				"replace": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.ReplaceTracks)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"output":      "/all/flags/output",
				"speed-limit": "2MB",
				"replace":     "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/flags/output", cfg.OutputPath)
				assert.Equal(t, "2MB", cfg.DownloadSpeedLimit)
				assert.True(t, cfg.ReplaceTracks)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t)
			flags := newTestFlagSet()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, flags.Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			require.NoError(t, bindFlagsToConfig(flags, cfg))

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	cfg := writeTestConfig(t)
	flags := newTestFlagSet()

	require.NoError(t, flags.Set("speed-limit", "invalid-speed"))

	err := bindFlagsToConfig(flags, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse download speed limit")
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of an empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ClientID: "test_client_id",
		LogLevel: "info",
	}

	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	// Calling with an empty flag set should just validate the config.
	require.NoError(t, bindFlagsToConfig(emptyFlags, cfg))
	assert.Equal(t, config.APIBaseURL, cfg.APIBaseURL)
}

// TestRootCommand_Subcommands tests that every subcommand is registered.
func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	expected := []string{"search", "get", "resolve", "download", "stream", "auth", "version"}

	for _, name := range expected {
		found := false

		for _, child := range rootCmd.Commands() {
			if child.Name() == name {
				found = true
				break
			}
		}

		assert.True(t, found, "subcommand %q should be registered", name)
	}
}
