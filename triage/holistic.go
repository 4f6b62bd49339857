// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tkarrer/mailtriage/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type resolvedMessage struct {
	message    *domain.Message
	annotation *domain.Annotation
}

// AnalyzeHolistically classifies a batch of messages in one classifier call
// so cross-message relationships (duplicate, superseded, expired) are visible
// to the model. Unresolvable ids are skipped; everything past resolution is
// all-or-nothing because a half-parsed cross-message verdict is worse than
// none.
func (e *Engine) AnalyzeHolistically(ctx context.Context, ids []string) (*domain.HolisticResult, error) {
	if e.classifier == nil {
		return nil, domain.ErrAIClientNotConfigured
	}

	start := time.Now()

	resolved := e.resolveWorkingSet(ctx, ids)
	if len(resolved) == 0 {
		return nil, domain.ErrNoValidInput
	}

	e.l.WithFields(logrus.Fields{"requested": len(ids), "resolved": len(resolved)}).Info("Resolved working set for holistic analysis")

	raw, err := e.classifier.Complete(ctx, e.systemPrompt(time.Now()), e.batchPrompt(resolved), e.configuration.Model)
	if err != nil {
		return nil, fmt.Errorf("classifier call failed: %w", err)
	}

	result, err := parseHolisticResponse(raw)
	if err != nil {
		return nil, err
	}

	result.EmailsAnalyzed = len(resolved)
	result.ProcessingTimeSeconds = time.Since(start).Seconds()

	e.l.WithFields(logrus.Fields{"analyzed": result.EmailsAnalyzed, "verdicts": len(result.Verdicts), "duration": time.Since(start)}).Info("Completed holistic analysis")
	return result, nil
}

// resolveWorkingSet looks every id up in parallel, store first with live
// mailbox fallback. The returned slice preserves input order; the barrier is
// full, no partial batch is ever sent to the classifier.
func (e *Engine) resolveWorkingSet(ctx context.Context, ids []string) []*resolvedMessage {
	slots := make([]*resolvedMessage, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.configuration.BulkConcurrency)
	for i := range ids {
		index := i
		g.Go(func() error {
			slots[index] = e.resolveOne(gctx, ids[index])
			return nil
		})
	}
	// resolveOne never errors, the group is only the join barrier
	_ = g.Wait()

	resolved := []*resolvedMessage{}
	for _, slot := range slots {
		if slot != nil {
			resolved = append(resolved, slot)
		}
	}

	return resolved
}

func (e *Engine) resolveOne(ctx context.Context, id string) *resolvedMessage {
	message, annotation, err := e.store.GetMessage(ctx, id)
	if err == nil {
		return &resolvedMessage{message: message, annotation: annotation}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		e.l.WithFields(logrus.Fields{"id": id, "error": err}).Warn("Store lookup failed, falling back to live mailbox")
	}

	if e.mailbox == nil {
		e.l.WithField("id", id).Warn("Skipping message, not in store and no live mailbox configured")
		return nil
	}

	live, err := e.mailbox.FetchByID(ctx, id)
	if err != nil {
		e.l.WithFields(logrus.Fields{"id": id, "error": err}).Warn("Skipping message, resolvable by neither store nor live mailbox")
		return nil
	}

	return &resolvedMessage{message: live}
}

type verdictWire struct {
	ID           string `json:"id"`
	Verdict      string `json:"verdict"`
	Priority     string `json:"priority"`
	BlocksOthers bool   `json:"blocks_others"`
	CanonicalID  string `json:"canonical_id"`
}

type holisticWire struct {
	Verdicts []verdictWire `json:"verdicts"`
}

// parseHolisticResponse validates the classifier output against the closed
// verdict taxonomy. Nothing untyped leaves this function.
func parseHolisticResponse(raw string) (*domain.HolisticResult, error) {
	wire := &holisticWire{}
	err := json.Unmarshal([]byte(stripFences(raw)), wire)
	if err != nil {
		return nil, &domain.AIResponseParseError{Raw: raw, Err: err}
	}

	result := &domain.HolisticResult{Verdicts: []domain.MessageVerdict{}}
	for _, v := range wire.Verdicts {
		if v.ID == "" {
			return nil, &domain.AIResponseParseError{Raw: raw, Err: fmt.Errorf("verdict without message id")}
		}

		verdict := domain.Verdict(v.Verdict)
		if !verdict.Valid() {
			return nil, &domain.AIResponseParseError{Raw: raw, Err: fmt.Errorf("unknown verdict %q for message %s", v.Verdict, v.ID)}
		}

		result.Verdicts = append(
			result.Verdicts,
			domain.MessageVerdict{
				MessageID:    v.ID,
				Verdict:      verdict,
				Priority:     v.Priority,
				BlocksOthers: v.BlocksOthers,
				CanonicalID:  v.CanonicalID,
			},
		)
	}

	return result, nil
}

// stripFences removes surrounding markdown code-fence markers that chat
// models like to wrap JSON in.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}
