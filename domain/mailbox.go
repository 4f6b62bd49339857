// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "context"

//go:generate mockgen -destination=mocks/mailbox.go -package=mocks . MailboxProvider
type FolderInfo struct {
	Name        string
	TotalCount  int
	UnreadCount int
}

// MailboxProvider is the live source of truth for mailbox contents. A COM
// desktop integration and a cloud graph API are both valid implementations;
// the engine treats the provider as optional and fails fast when it is
// absent.
type MailboxProvider interface {
	FetchByID(ctx context.Context, id string) (*Message, error)
	// FetchPage returns one page of a folder plus the folder's total count.
	FetchPage(ctx context.Context, folder string, limit, offset int) ([]*Message, int, error)
	ApplyLabel(ctx context.Context, id, category string) error
	FetchFolders(ctx context.Context) ([]FolderInfo, error)
	FetchConversation(ctx context.Context, conversationID string) ([]*Message, error)
}
