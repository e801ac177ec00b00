package hospitaldb

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Client is the main entry point for the storage layer
type Client struct {
	config Config
	logger *slog.Logger
	DB     *sql.DB
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := initDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create database: %w", err)
	}

	if config.verbose && logger != nil {
		logger.Info("database ready", "path", config.DBPath)
	}

	return &Client{
		config: config,
		logger: logger,
		DB:     db,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
