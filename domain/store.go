// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "context"

//go:generate mockgen -destination=mocks/store.go -package=mocks . Store
type Store interface {
	Close() error
	// GetMessage returns the stored message and its annotation, which may be
	// nil. Returns ErrNotFound if the message was never materialized.
	GetMessage(ctx context.Context, id string) (*Message, *Annotation, error)
	// GetAnnotation returns ErrNotFound if no annotation exists for the id.
	GetAnnotation(ctx context.Context, id string) (*Annotation, error)
	ListMessages(ctx context.Context, folder string, limit, offset int) ([]*Message, error)
	CountMessages(ctx context.Context, folder string) (int, error)
	// SaveMessage writes the message and its annotation as a single unit.
	SaveMessage(ctx context.Context, message *Message, annotation *Annotation) error
	SetCategory(ctx context.Context, id, category, userCategory string) error
}
