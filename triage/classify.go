// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkarrer/mailtriage/domain"

	"github.com/sirupsen/logrus"
)

// UpdateClassification sets the category (and user override) for a message,
// materializing it from the live mailbox first if it was never stored. The
// local record is authoritative; pushing the label back to the provider is
// best-effort and reported via the outcome without ever failing the call.
func (e *Engine) UpdateClassification(ctx context.Context, id, category string, propagate bool) (domain.PropagateOutcome, error) {
	outcome := domain.PropagateOutcome{}

	_, _, err := e.store.GetMessage(ctx, id)
	switch {
	case err == nil:
		if err := e.store.SetCategory(ctx, id, category, category); err != nil {
			return outcome, fmt.Errorf("could not update classification for %s: %w", id, err)
		}
	case errors.Is(err, domain.ErrNotFound):
		if err := e.materialize(ctx, id, category); err != nil {
			return outcome, err
		}
	default:
		return outcome, fmt.Errorf("could not look up message %s: %w", id, err)
	}

	e.l.WithFields(logrus.Fields{"id": id, "category": category}).Info("Updated classification")

	if propagate {
		outcome.Attempted = true
		if e.mailbox == nil {
			outcome.Err = domain.ErrSourceUnavailable
		} else {
			outcome.Err = e.mailbox.ApplyLabel(ctx, id, category)
		}
		if outcome.Err != nil {
			e.l.WithFields(logrus.Fields{"id": id, "category": category, "error": outcome.Err}).Warn("Could not propagate label to mailbox provider")
		}
	}

	return outcome, nil
}

// materialize fetches the message from the live mailbox and stores it
// together with its annotation as one insert. No partial write happens when
// the fetch fails.
func (e *Engine) materialize(ctx context.Context, id, category string) error {
	if e.mailbox == nil {
		return fmt.Errorf("message %s not in store: %w", id, domain.ErrSourceUnavailable)
	}

	message, err := e.mailbox.FetchByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("message %s not in store or live mailbox: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("message %s not in store and live fetch failed (%v): %w", id, err, domain.ErrSourceUnavailable)
	}

	annotation := &domain.Annotation{
		MessageID:    id,
		Category:     category,
		UserCategory: category,
	}
	if err := e.store.SaveMessage(ctx, message, annotation); err != nil {
		return fmt.Errorf("could not materialize message %s: %w", id, err)
	}

	e.l.WithFields(logrus.Fields{"id": id, "folder": message.Folder}).Info("Materialized message from live mailbox")
	return nil
}
