// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
	return filename
}

func TestReadConfig(t *testing.T) {
	filename := writeConfig(t, `
Database = "triage.db"
Listen = ":9000"
Loglevel = "debug"

[Mailbox]
Enabled = true
BaseURL = "https://mail.example.com/api"
Token = "secret"
TimeoutSeconds = 10

[AI]
BaseURL = "https://ai.example.com"
APIKey = "key"
Model = "gpt-4o-mini"
Temperature = 0.2
MaxTokens = 2048

[Triage]
BulkConcurrency = 4
SnippetLength = 300
UserContext = "works in finance"
`)

	config, err := ReadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "triage.db", config.Database)
	assert.Equal(t, ":9000", config.Listen)
	assert.Equal(t, "debug", *config.Loglevel)
	assert.True(t, config.Mailbox.Enabled)
	assert.Equal(t, "https://mail.example.com/api", config.Mailbox.BaseURL)
	assert.Equal(t, "gpt-4o-mini", config.AI.Model)
	assert.Equal(t, 4, config.Triage.BulkConcurrency)
}

func TestReadConfig_Defaults(t *testing.T) {
	config, err := ReadConfig(writeConfig(t, ``))
	require.NoError(t, err)
	assert.Equal(t, "mailtriage.db", config.Database)
	assert.Equal(t, ":8742", config.Listen)
	assert.False(t, config.Mailbox.Enabled)
	assert.Nil(t, config.Loglevel)
}

func TestReadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{
			"emptydatabase",
			"Database = \" \"",
			"Database name must not be empty, set to a filename for the sqlite database",
		},
		{
			"mailboxwithoutbaseurl",
			"[Mailbox]\nEnabled = true\nToken = \"secret\"",
			"Mailbox.BaseURL must not be empty when the mailbox provider is enabled",
		},
		{
			"mailboxwithouttoken",
			"[Mailbox]\nEnabled = true\nBaseURL = \"https://mail.example.com\"",
			"Mailbox.Token must not be empty when the mailbox provider is enabled",
		},
		{
			"aiwithoutmodel",
			"[AI]\nBaseURL = \"https://ai.example.com\"\nAPIKey = \"key\"",
			"AI.Model must be set if AI.BaseURL is set",
		},
		{
			"negativeconcurrency",
			"[Triage]\nBulkConcurrency = -1",
			"Triage.BulkConcurrency must not be negative",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, tc.content))
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
