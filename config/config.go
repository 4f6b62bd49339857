// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database string
	Listen   string

	Mailbox MailboxConfig
	AI      AIConfig
	Triage  TriageConfig

	Loglevel *string
}

type MailboxConfig struct {
	Enabled        bool
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

type AIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

type TriageConfig struct {
	BulkConcurrency int
	SnippetLength   int
	UserContext     string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{
		Database: "mailtriage.db",
		Listen:   ":8742",
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if c.Mailbox.Enabled {
		if err := validateNonEmptyStringField(c.Mailbox.BaseURL, "Mailbox.BaseURL must not be empty when the mailbox provider is enabled"); err != nil {
			return err
		}
		if err := validateNonEmptyStringField(c.Mailbox.Token, "Mailbox.Token must not be empty when the mailbox provider is enabled"); err != nil {
			return err
		}
	}

	aiSet := len(strings.TrimSpace(c.AI.BaseURL)) > 0
	if aiSet {
		if err := validateNonEmptyStringField(c.AI.APIKey, "AI.APIKey must be set if AI.BaseURL is set"); err != nil {
			return err
		}
		if err := validateNonEmptyStringField(c.AI.Model, "AI.Model must be set if AI.BaseURL is set"); err != nil {
			return err
		}
	}

	if c.Triage.BulkConcurrency < 0 {
		return fmt.Errorf("Triage.BulkConcurrency must not be negative")
	}
	if c.Triage.SnippetLength < 0 {
		return fmt.Errorf("Triage.SnippetLength must not be negative")
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
