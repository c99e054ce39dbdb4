package app

import (
	"context"
	"strings"

	"github.com/mkroman/soundcloud-grabber/internal/config"
	"github.com/mkroman/soundcloud-grabber/internal/logger"
)

// ExecuteAuthCommand persists the given API client ID to the configuration
// file, creating the file if it does not exist yet.
func ExecuteAuthCommand(ctx context.Context, cfg *config.Config, clientID string) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		logger.Fatalf(ctx, "Client ID cannot be empty")
		return
	}

	cfg.ClientID = clientID

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "You can now search and download tracks, for example:")
	logger.Info(ctx, "soundcloud-grabber search --query \"morning light\"")
	logger.Info(ctx, "soundcloud-grabber download https://soundcloud.com/artist/track")
}
