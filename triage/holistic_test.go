// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/domain/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeHolistically_NoClassifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := newTestEngine(mocks.NewMockStore(ctrl), nil, nil)

	_, err := engine.AnalyzeHolistically(context.Background(), []string{"m1"})
	assert.ErrorIs(t, err, domain.ErrAIClientNotConfigured)
}

func TestAnalyzeHolistically_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no Complete expectation: the classifier must never be called
	classifier := mocks.NewMockAIClassifier(ctrl)
	engine := newTestEngine(mocks.NewMockStore(ctrl), nil, classifier)

	_, err := engine.AnalyzeHolistically(context.Background(), []string{})
	assert.ErrorIs(t, err, domain.ErrNoValidInput)
}

func TestAnalyzeHolistically_AllUnresolvable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	mailbox := mocks.NewMockMailboxProvider(ctrl)
	classifier := mocks.NewMockAIClassifier(ctrl)
	engine := newTestEngine(store, mailbox, classifier)

	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m1")).
		Return(nil, nil, notFound("m1"))

	mailbox.EXPECT().
		FetchByID(gomock.Any(), gomock.Eq("m1")).
		Return(nil, fmt.Errorf("connection refused"))

	_, err := engine.AnalyzeHolistically(context.Background(), []string{"m1"})
	assert.ErrorIs(t, err, domain.ErrNoValidInput)
}

func TestAnalyzeHolistically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	mailbox := mocks.NewMockMailboxProvider(ctrl)
	classifier := mocks.NewMockAIClassifier(ctrl)
	engine := newTestEngine(store, mailbox, classifier)

	stored := message("m1", "Q3 report", "INBOX")
	stored.Body = "please find attached the quarterly numbers"
	stored.ReceivedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	live := message("m2", "Q3 report v2", "INBOX")
	live.Body = "updated numbers, ignore my previous mail"

	// m1 resolves from the store, m2 falls back to the live mailbox,
	// m3 is resolvable by neither source and gets skipped
	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m1")).
		Return(stored, &domain.Annotation{MessageID: "m1", Category: "report", Summary: "quarterly numbers"}, nil)

	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m2")).
		Return(nil, nil, notFound("m2"))
	mailbox.EXPECT().
		FetchByID(gomock.Any(), gomock.Eq("m2")).
		Return(live, nil)

	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m3")).
		Return(nil, nil, notFound("m3"))
	mailbox.EXPECT().
		FetchByID(gomock.Any(), gomock.Eq("m3")).
		Return(nil, fmt.Errorf("gone"))

	classifier.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, systemPrompt, userPrompt string, _ domain.ModelParams) (string, error) {
			assert.Contains(t, systemPrompt, "truly-relevant")
			assert.Contains(t, userPrompt, "Analyze the following 2 emails")
			assert.Contains(t, userPrompt, "ID: m1")
			assert.Contains(t, userPrompt, "Current category: report")
			assert.Contains(t, userPrompt, "Summary: quarterly numbers")
			assert.Contains(t, userPrompt, "ID: m2")
			assert.NotContains(t, userPrompt, "m3")
			return "```json\n{\"verdicts\":[" +
				"{\"id\":\"m1\",\"verdict\":\"superseded\",\"priority\":\"low\",\"canonical_id\":\"m2\"}," +
				"{\"id\":\"m2\",\"verdict\":\"truly-relevant\",\"priority\":\"high\",\"blocks_others\":true}]}\n```", nil
		})

	result, err := engine.AnalyzeHolistically(context.Background(), []string{"m1", "m2", "m3"})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.EmailsAnalyzed)
	assert.GreaterOrEqual(t, result.ProcessingTimeSeconds, 0.0)
	assert.Equal(
		t,
		[]domain.MessageVerdict{
			{MessageID: "m1", Verdict: domain.VerdictSuperseded, Priority: "low", CanonicalID: "m2"},
			{MessageID: "m2", Verdict: domain.VerdictRelevant, Priority: "high", BlocksOthers: true},
		},
		result.Verdicts,
	)
}

func TestAnalyzeHolistically_ClassifierError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	classifier := mocks.NewMockAIClassifier(ctrl)
	engine := newTestEngine(store, nil, classifier)

	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m1")).
		Return(message("m1", "a", "INBOX"), nil, nil)

	classifier.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("rate limited"))

	_, err := engine.AnalyzeHolistically(context.Background(), []string{"m1"})
	assert.EqualError(t, err, "classifier call failed: rate limited")
}

func TestAnalyzeHolistically_UnknownVerdict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	classifier := mocks.NewMockAIClassifier(ctrl)
	engine := newTestEngine(store, nil, classifier)

	store.EXPECT().
		GetMessage(gomock.Any(), gomock.Eq("m1")).
		Return(message("m1", "a", "INBOX"), nil, nil)

	raw := `{"verdicts":[{"id":"m1","verdict":"maybe-relevant"}]}`
	classifier.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(raw, nil)

	_, err := engine.AnalyzeHolistically(context.Background(), []string{"m1"})
	parseErr := &domain.AIResponseParseError{}
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, raw, parseErr.Raw)
}

func Test_parseHolisticResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []domain.MessageVerdict
		err      bool
	}{
		{
			"plain",
			`{"verdicts":[{"id":"a","verdict":"expired"}]}`,
			[]domain.MessageVerdict{{MessageID: "a", Verdict: domain.VerdictExpired}},
			false,
		},
		{
			"fenced",
			"```json\n{\"verdicts\":[{\"id\":\"a\",\"verdict\":\"duplicate\",\"canonical_id\":\"b\"}]}\n```",
			[]domain.MessageVerdict{{MessageID: "a", Verdict: domain.VerdictDuplicate, CanonicalID: "b"}},
			false,
		},
		{"fencedforeignobject", "```json\n{\"a\":1}\n```", []domain.MessageVerdict{}, false},
		{"notjson", "I could not classify these emails.", nil, true},
		{"missingid", `{"verdicts":[{"verdict":"expired"}]}`, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := parseHolisticResponse(tc.raw)
			if tc.err {
				parseErr := &domain.AIResponseParseError{}
				assert.ErrorAs(t, err, &parseErr)
				assert.Equal(t, tc.raw, parseErr.Raw)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result.Verdicts)
			}
		})
	}
}

func Test_stripFences(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fencedjson", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fencednolang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripFences(tc.raw))
		})
	}
}

func Test_snippet(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		max      int
		expected string
	}{
		{"short", "hello world", 200, "hello world"},
		{"truncated", strings.Repeat("a", 250), 200, strings.Repeat("a", 200) + "..."},
		{"whitespacecollapsed", "hello\n\n  world\t!", 200, "hello world !"},
		{"multibyte", strings.Repeat("ü", 100), 5, "üüüüü..."},
		{"multibyteunderlimit", "grüße", 200, "grüße"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := snippet(tc.body, tc.max)
			assert.Equal(t, tc.expected, result)
			assert.True(t, utf8.ValidString(result))
		})
	}
}
