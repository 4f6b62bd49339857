// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkarrer/mailtriage/domain"

	"github.com/sirupsen/logrus"
)

// Merge overlays a stored annotation onto a message. Non-empty annotation
// fields win; empty ones never blank out what the message already carries.
// Either input may be nil. Pure function, read paths only.
func Merge(live *domain.Message, stored *domain.Annotation) domain.EnrichedMessage {
	enriched := domain.EnrichedMessage{}
	if live != nil {
		enriched.Message = *live
	}

	if stored == nil {
		return enriched
	}

	if enriched.ID == "" {
		enriched.ID = stored.MessageID
	}
	if stored.Category != "" {
		enriched.Category = stored.Category
	}
	if stored.Confidence != nil {
		enriched.Confidence = stored.Confidence
	}
	if stored.Reasoning != "" {
		enriched.Reasoning = stored.Reasoning
	}
	if stored.Summary != "" {
		enriched.Summary = stored.Summary
	}
	if stored.UserCategory != "" {
		enriched.UserCategory = stored.UserCategory
	}

	return enriched
}

// GetEnrichedMessages lists one page of messages from the requested source
// with annotations merged in. Enrichment is best-effort: a missing or
// unreadable annotation leaves the message unenriched.
func (e *Engine) GetEnrichedMessages(ctx context.Context, folder string, limit, offset int, source string) ([]domain.EnrichedMessage, int, error) {
	switch source {
	case SourceLive:
		if e.mailbox == nil {
			return nil, 0, domain.ErrSourceUnavailable
		}

		messages, total, err := e.mailbox.FetchPage(ctx, folder, limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("could not fetch live page: %w", err)
		}

		return e.enrichAll(ctx, messages), total, nil
	case SourceStore, "":
		messages, err := e.store.ListMessages(ctx, folder, limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("could not list stored messages: %w", err)
		}

		total, err := e.store.CountMessages(ctx, folder)
		if err != nil {
			return nil, 0, fmt.Errorf("could not count stored messages: %w", err)
		}

		return e.enrichAll(ctx, messages), total, nil
	default:
		return nil, 0, fmt.Errorf("unknown listing source %q", source)
	}
}

// Conversation returns all messages of a conversation from the live mailbox,
// enriched with stored annotations.
func (e *Engine) Conversation(ctx context.Context, conversationID string) ([]domain.EnrichedMessage, error) {
	if e.mailbox == nil {
		return nil, domain.ErrSourceUnavailable
	}

	messages, err := e.mailbox.FetchConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch conversation %s: %w", conversationID, err)
	}

	return e.enrichAll(ctx, messages), nil
}

func (e *Engine) Folders(ctx context.Context) ([]domain.FolderInfo, error) {
	if e.mailbox == nil {
		return nil, domain.ErrSourceUnavailable
	}

	folders, err := e.mailbox.FetchFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch folders: %w", err)
	}

	return folders, nil
}

func (e *Engine) enrichAll(ctx context.Context, messages []*domain.Message) []domain.EnrichedMessage {
	enriched := make([]domain.EnrichedMessage, 0, len(messages))
	for _, m := range messages {
		annotation, err := e.store.GetAnnotation(ctx, m.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				e.l.WithFields(logrus.Fields{"id": m.ID, "error": err}).Debug("Could not load annotation, message stays unenriched")
			}
			annotation = nil
		}
		enriched = append(enriched, Merge(m, annotation))
	}

	return enriched
}
