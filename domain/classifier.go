// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "context"

//go:generate mockgen -destination=mocks/classifier.go -package=mocks . AIClassifier
type ModelParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// AIClassifier is a stateless request/response completion service. No
// streaming is required by this engine.
type AIClassifier interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, params ModelParams) (string, error)
}
