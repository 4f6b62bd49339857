// SPDX-License-Identifier: GPL-3.0-or-later
package graphmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.InitLogging("error")
	os.Exit(m.Run())
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GraphMail {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewGraphMail(server.URL, "test-token", 0)
	require.NoError(t, err)
	return provider
}

func TestNewGraphMail_EmptyBaseURL(t *testing.T) {
	_, err := NewGraphMail("", "token", 0)
	assert.EqualError(t, err, "baseURL cannot be empty")
}

func TestFetchByID(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/messages/m1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(wireMessage{
			ID:             "m1",
			Subject:        "Q3 report",
			From:           "boss@example.com",
			BodyPreview:    "numbers attached",
			ReceivedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			ConversationID: "c1",
			Folder:         "INBOX",
			Categories:     []string{"Reports"},
		})
	})

	message, err := provider.FetchByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", message.ID)
	assert.Equal(t, "Q3 report", message.Subject)
	assert.Equal(t, "boss@example.com", message.Sender)
	assert.Equal(t, "c1", message.ConversationID)
	assert.Equal(t, []string{"Reports"}, message.Categories)
}

func TestFetchByID_NotFound(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := provider.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchByID_MissingID(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireMessage{Subject: "no id"})
	})

	_, err := provider.FetchByID(context.Background(), "m1")
	assert.EqualError(t, err, "message without id in mail api response")
}

func TestFetchPage(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "INBOX", r.URL.Query().Get("folder"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "4", r.URL.Query().Get("offset"))

		_ = json.NewEncoder(w).Encode(pageEnvelope{
			Value: []wireMessage{{ID: "m5"}, {ID: "m6"}},
			Total: 42,
		})
	})

	messages, total, err := provider.FetchPage(context.Background(), "INBOX", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, messages, 2)
	assert.Equal(t, "m5", messages[0].ID)
	assert.Equal(t, "m6", messages[1].ID)
}

func TestApplyLabel(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages/m1/categories", r.URL.Path)

		body := map[string]string{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "newsletter", body["category"])

		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, provider.ApplyLabel(context.Background(), "m1", "newsletter"))
}

func TestApplyLabel_Rejected(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := provider.ApplyLabel(context.Background(), "m1", "newsletter")
	assert.EqualError(t, err, "unexpected status 400 applying label to m1, expected 200/204")
}

func TestApplyLabel_RejectedWithErrorPayload(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unknown category"}`))
	})

	err := provider.ApplyLabel(context.Background(), "m1", "newsletter")
	assert.EqualError(t, err, `unexpected status 400 applying label to m1, expected 200/204: {"error":"unknown category"}`)
}

func Test_errorDetail(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"empty", "", ""},
		{"whitespaceonly", "  \n\t", ""},
		{"short", `{"error":"nope"}`, `: {"error":"nope"}`},
		{"multiline", "bad\nrequest", ": bad request"},
		{"truncated", strings.Repeat("x", 150), ": " + strings.Repeat("x", 120) + "..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errorDetail([]byte(tc.body)))
		})
	}
}

func TestFetchFolders(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folders", r.URL.Path)

		_ = json.NewEncoder(w).Encode(folderEnvelope{
			Value: []wireFolder{
				{DisplayName: "INBOX", TotalItemCount: 120, UnreadCount: 7},
				{DisplayName: "Archive", TotalItemCount: 3000},
			},
		})
	})

	folders, err := provider.FetchFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(
		t,
		[]domain.FolderInfo{
			{Name: "INBOX", TotalCount: 120, UnreadCount: 7},
			{Name: "Archive", TotalCount: 3000},
		},
		folders,
	)
}

func TestFetchConversation(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/c1/messages", r.URL.Path)

		_ = json.NewEncoder(w).Encode(pageEnvelope{Value: []wireMessage{{ID: "m1"}, {ID: "m2"}}})
	})

	messages, err := provider.FetchConversation(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
}

func TestFetchConversation_NotFound(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := provider.FetchConversation(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
