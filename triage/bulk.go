// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"errors"

	"github.com/tkarrer/mailtriage/domain"

	"github.com/sirupsen/logrus"
)

// BulkApply pushes each id's stored classification to the mailbox provider.
// Items are fully isolated: one item's failure never affects another, and
// every input id lands in exactly one bucket of the result. Only a missing
// provider fails the whole call.
func (e *Engine) BulkApply(ctx context.Context, ids []string) (domain.BulkResult, error) {
	if e.mailbox == nil {
		return domain.BulkResult{}, domain.ErrSourceUnavailable
	}

	failures := make([]*domain.BulkFailure, len(ids))
	semaphore := make(chan bool, e.configuration.BulkConcurrency)
	for i := range ids {
		semaphore <- true
		go func(index int) {
			failures[index] = e.applyOne(ctx, ids[index])
			<-semaphore
		}(i)
	}

	for i := 0; i < cap(semaphore); i++ {
		semaphore <- true
	}

	result := domain.BulkResult{}
	for _, failure := range failures {
		if failure == nil {
			result.SuccessCount++
		} else {
			result.FailureCount++
			result.Failures = append(result.Failures, *failure)
		}
	}

	e.l.WithFields(logrus.Fields{"total": len(ids), "ok": result.SuccessCount, "failed": result.FailureCount}).Info("Applied labels in bulk")
	return result, nil
}

func (e *Engine) applyOne(ctx context.Context, id string) *domain.BulkFailure {
	_, annotation, err := e.store.GetMessage(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.BulkFailure{ID: id, Reason: "not found in store"}
	}
	if err != nil {
		return &domain.BulkFailure{ID: id, Reason: err.Error()}
	}
	if annotation == nil || annotation.EffectiveCategory() == "" {
		return &domain.BulkFailure{ID: id, Reason: "no classification stored"}
	}

	category := annotation.EffectiveCategory()
	if err := e.mailbox.ApplyLabel(ctx, id, category); err != nil {
		return &domain.BulkFailure{ID: id, Reason: err.Error()}
	}

	e.l.WithFields(logrus.Fields{"id": id, "category": category}).Debug("Applied label")
	return nil
}
