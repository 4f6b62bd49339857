// SPDX-License-Identifier: GPL-3.0-or-later
package graphmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"

	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 20 * time.Second

// GraphMail implements the mailbox provider contract against a cloud
// graph-style mail REST API.
type GraphMail struct {
	client  *http.Client
	baseURL string
	token   string

	l *logrus.Logger
}

func NewGraphMail(baseURL, token string, timeout time.Duration) (*GraphMail, error) {
	if len(baseURL) == 0 {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GraphMail{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		token:   token,
		l:       log.Logger(log.LOG_MAILBOX),
	}, nil
}

type wireMessage struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	From           string    `json:"from"`
	ToRecipients   string    `json:"toRecipients"`
	BodyPreview    string    `json:"bodyPreview"`
	ReceivedAt     time.Time `json:"receivedDateTime"`
	ConversationID string    `json:"conversationId"`
	IsRead         bool      `json:"isRead"`
	Folder         string    `json:"folder"`
	Categories     []string  `json:"categories"`
}

type pageEnvelope struct {
	Value []wireMessage `json:"value"`
	Total int           `json:"total"`
}

type wireFolder struct {
	DisplayName    string `json:"displayName"`
	TotalItemCount int    `json:"totalItemCount"`
	UnreadCount    int    `json:"unreadItemCount"`
}

type folderEnvelope struct {
	Value []wireFolder `json:"value"`
}

func (g *GraphMail) FetchByID(ctx context.Context, id string) (*domain.Message, error) {
	wire := &wireMessage{}
	status, body, err := g.doJSON(ctx, http.MethodGet, "/messages/"+url.PathEscape(id), nil, wire)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching message %s, expected 200%s", status, id, errorDetail(body))
	}

	return wire.toMessage()
}

func (g *GraphMail) FetchPage(ctx context.Context, folder string, limit, offset int) ([]*domain.Message, int, error) {
	query := url.Values{}
	query.Set("folder", folder)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	envelope := &pageEnvelope{}
	status, body, err := g.doJSON(ctx, http.MethodGet, "/messages?"+query.Encode(), nil, envelope)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status %d fetching page, expected 200%s", status, errorDetail(body))
	}

	messages, err := toMessages(envelope.Value)
	if err != nil {
		return nil, 0, err
	}

	g.l.WithFields(logrus.Fields{"folder": folder, "count": len(messages), "total": envelope.Total}).Debug("Fetched live page")
	return messages, envelope.Total, nil
}

func (g *GraphMail) ApplyLabel(ctx context.Context, id, category string) error {
	request := map[string]string{"category": category}
	status, body, err := g.doJSON(ctx, http.MethodPost, "/messages/"+url.PathEscape(id)+"/categories", request, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d applying label to %s, expected 200/204%s", status, id, errorDetail(body))
	}

	g.l.WithFields(logrus.Fields{"id": id, "category": category}).Debug("Applied label")
	return nil
}

func (g *GraphMail) FetchFolders(ctx context.Context) ([]domain.FolderInfo, error) {
	envelope := &folderEnvelope{}
	status, body, err := g.doJSON(ctx, http.MethodGet, "/folders", nil, envelope)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching folders, expected 200%s", status, errorDetail(body))
	}

	folders := []domain.FolderInfo{}
	for _, f := range envelope.Value {
		folders = append(
			folders,
			domain.FolderInfo{
				Name:        f.DisplayName,
				TotalCount:  f.TotalItemCount,
				UnreadCount: f.UnreadCount,
			},
		)
	}

	return folders, nil
}

func (g *GraphMail) FetchConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	envelope := &pageEnvelope{}
	status, body, err := g.doJSON(ctx, http.MethodGet, "/conversations/"+url.PathEscape(conversationID)+"/messages", nil, envelope)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching conversation %s, expected 200%s", status, conversationID, errorDetail(body))
	}

	return toMessages(envelope.Value)
}

// doJSON performs an authenticated request and decodes the response into out
// when the status carries a body worth decoding. The status and raw body are
// returned so callers can map them onto their own semantics; the body is
// always drained so the connection can be reused.
func (g *GraphMail) doJSON(ctx context.Context, method, path string, body, out interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("could not send request to mail api: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("could not read mail api response: %w", err)
	}

	if out != nil && resp.StatusCode == http.StatusOK {
		err = json.Unmarshal(responseBody, out)
		if err != nil {
			return resp.StatusCode, responseBody, fmt.Errorf("could not deserialize mail api response: %w", err)
		}
	}

	return resp.StatusCode, responseBody, nil
}

// errorDetail condenses an error payload into something safe to append to an
// error message. Empty bodies contribute nothing.
func errorDetail(body []byte) string {
	detail := strings.Join(strings.Fields(string(body)), " ")
	runes := []rune(detail)
	if len(runes) > 120 {
		detail = string(runes[:120]) + "..."
	}
	if detail == "" {
		return ""
	}

	return ": " + detail
}

// toMessage validates the provider payload at the boundary; nothing without
// an id leaves this package.
func (w *wireMessage) toMessage() (*domain.Message, error) {
	if w.ID == "" {
		return nil, fmt.Errorf("message without id in mail api response")
	}

	return &domain.Message{
		ID:             w.ID,
		Subject:        w.Subject,
		Sender:         w.From,
		Recipients:     w.ToRecipients,
		Body:           w.BodyPreview,
		ReceivedAt:     w.ReceivedAt,
		ConversationID: w.ConversationID,
		IsRead:         w.IsRead,
		Folder:         w.Folder,
		Categories:     w.Categories,
	}, nil
}

func toMessages(wires []wireMessage) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	for i := range wires {
		message, err := wires[i].toMessage()
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}
