// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"fmt"

	"github.com/tkarrer/mailtriage/domain"
)

const (
	DefaultBulkConcurrency = 6
	DefaultSnippetLength   = 200
)

type ConfigFunc func(c *configuration) error

func BulkConcurrency(workers int) ConfigFunc {
	return func(c *configuration) error {
		if workers <= 0 {
			return fmt.Errorf("BulkConcurrency must be positive, got %d", workers)
		}

		c.BulkConcurrency = workers
		return nil
	}
}

func SnippetLength(chars int) ConfigFunc {
	return func(c *configuration) error {
		if chars <= 0 {
			return fmt.Errorf("SnippetLength must be positive, got %d", chars)
		}

		c.SnippetLength = chars
		return nil
	}
}

// UserContext adds user or job context to the holistic system prompt.
func UserContext(context string) ConfigFunc {
	return func(c *configuration) error {
		c.UserContext = context
		return nil
	}
}

func ModelParams(params domain.ModelParams) ConfigFunc {
	return func(c *configuration) error {
		if len(params.Model) == 0 {
			return fmt.Errorf("ModelParams.Model cannot be empty")
		}

		c.Model = params
		return nil
	}
}

type configuration struct {
	BulkConcurrency int
	SnippetLength   int
	UserContext     string
	Model           domain.ModelParams
}

func defaultConfiguration() *configuration {
	return &configuration{
		BulkConcurrency: DefaultBulkConcurrency,
		SnippetLength:   DefaultSnippetLength,
	}
}
