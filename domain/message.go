// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

// Message is the canonical message record. The mailbox provider owns it while
// it is live; once materialized, the store owns the local copy.
type Message struct {
	ID             string
	Subject        string
	Sender         string
	Recipients     string
	Body           string
	ReceivedAt     time.Time
	ConversationID string
	IsRead         bool
	Folder         string
	Categories     []string
}

// Annotation is the AI-derived overlay for a single message. An annotation
// without a stored message is meaningless; materialization writes both in one
// transaction.
type Annotation struct {
	MessageID    string
	Category     string
	Confidence   *float64
	Reasoning    string
	Summary      string
	UserCategory string
}

// EffectiveCategory prefers the manual override over the AI category.
func (a *Annotation) EffectiveCategory() string {
	if a.UserCategory != "" {
		return a.UserCategory
	}
	return a.Category
}

// EnrichedMessage is the read-only projection of a message with its
// annotation merged in.
type EnrichedMessage struct {
	Message

	Category     string
	Confidence   *float64
	Reasoning    string
	Summary      string
	UserCategory string
}
