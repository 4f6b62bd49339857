// SPDX-License-Identifier: GPL-3.0-or-later
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

type Store struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewStore(datasource string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_STORE)
	l.WithField("file", datasource).Info("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Store{
		db: db,
		l:  l,
	}, nil
}

func (s *Store) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	s.l.Info("Disconnected")
	return nil
}

type messageRow struct {
	Id             string
	Subject        string
	Sender         string
	Recipients     string
	Body           string
	ReceivedAt     time.Time `db:"receivedat"`
	ConversationId string    `db:"conversationid"`
	IsRead         bool      `db:"isread"`
	Folder         string
	Categories     string
}

type annotationRow struct {
	MessageId    string `db:"messageid"`
	Category     string
	Confidence   *float64
	Reasoning    string
	Summary      string
	UserCategory string `db:"usercategory"`
}

func (s *Store) GetMessage(ctx context.Context, id string) (*domain.Message, *domain.Annotation, error) {
	row := messageRow{}
	err := s.db.GetContext(
		ctx,
		&row,
		`SELECT id, subject, sender, recipients, body, receivedat, conversationid, isread, folder, categories FROM messages WHERE id = ?`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, nil, &domain.StoreReadError{Err: err}
	}

	message, err := row.toMessage()
	if err != nil {
		return nil, nil, &domain.StoreReadError{Err: err}
	}

	annotation, err := s.GetAnnotation(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return message, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return message, annotation, nil
}

func (s *Store) GetAnnotation(ctx context.Context, id string) (*domain.Annotation, error) {
	row := annotationRow{}
	err := s.db.GetContext(
		ctx,
		&row,
		`SELECT messageid, category, confidence, reasoning, summary, usercategory FROM annotations WHERE messageid = ?`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StoreReadError{Err: err}
	}

	return row.toAnnotation(), nil
}

func (s *Store) ListMessages(ctx context.Context, folder string, limit, offset int) ([]*domain.Message, error) {
	rows := []messageRow{}

	qry := `SELECT id, subject, sender, recipients, body, receivedat, conversationid, isread, folder, categories FROM messages`
	args := []interface{}{}
	if folder != "" {
		qry += ` WHERE folder = ?`
		args = append(args, folder)
	}
	qry += ` ORDER BY receivedat DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	err := s.db.SelectContext(ctx, &rows, qry, args...)
	if err != nil {
		return nil, &domain.StoreReadError{Err: err}
	}

	messages := []*domain.Message{}
	for _, row := range rows {
		message, err := row.toMessage()
		if err != nil {
			return nil, &domain.StoreReadError{Err: err}
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func (s *Store) CountMessages(ctx context.Context, folder string) (int, error) {
	count := 0
	var err error
	if folder == "" {
		err = s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`)
	} else {
		err = s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages WHERE folder = ?`, folder)
	}
	if err != nil {
		return 0, &domain.StoreReadError{Err: err}
	}

	return count, nil
}

// SaveMessage writes the message and its annotation in one transaction so a
// cancelled call never leaves a message without its annotation.
func (s *Store) SaveMessage(ctx context.Context, message *domain.Message, annotation *domain.Annotation) error {
	categories, err := json.Marshal(message.Categories)
	if err != nil {
		return &domain.StoreWriteError{Err: err}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &domain.StoreWriteError{Err: fmt.Errorf("could not start transaction: %w", err)}
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO messages (id, subject, sender, recipients, body, receivedat, conversationid, isread, folder, categories)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.Subject, message.Sender, message.Recipients, message.Body,
		message.ReceivedAt, message.ConversationID, message.IsRead, message.Folder, string(categories),
	)
	if err != nil {
		return txEnd(tx, &domain.StoreWriteError{Err: fmt.Errorf("could not save message: %w", err)})
	}

	if annotation != nil {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO annotations (messageid, category, confidence, reasoning, summary, usercategory)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(messageid) DO UPDATE SET
				category = excluded.category,
				confidence = excluded.confidence,
				reasoning = excluded.reasoning,
				summary = excluded.summary,
				usercategory = excluded.usercategory`,
			message.ID, annotation.Category, annotation.Confidence,
			annotation.Reasoning, annotation.Summary, annotation.UserCategory,
		)
		if err != nil {
			return txEnd(tx, &domain.StoreWriteError{Err: fmt.Errorf("could not save annotation: %w", err)})
		}
	}

	err = txEnd(tx, nil)
	if err != nil {
		return err
	}

	s.l.WithFields(logrus.Fields{"id": message.ID, "folder": message.Folder}).Debug("Persisted message")
	return nil
}

func (s *Store) SetCategory(ctx context.Context, id, category, userCategory string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO annotations (messageid, category, usercategory) VALUES (?, ?, ?)
		 ON CONFLICT(messageid) DO UPDATE SET
			category = excluded.category,
			usercategory = excluded.usercategory`,
		id, category, userCategory,
	)
	if err != nil {
		return &domain.StoreWriteError{Err: fmt.Errorf("could not set category: %w", err)}
	}

	s.l.WithFields(logrus.Fields{"id": id, "category": category}).Debug("Updated classification")
	return nil
}

func (r *messageRow) toMessage() (*domain.Message, error) {
	categories := []string{}
	if err := json.Unmarshal([]byte(r.Categories), &categories); err != nil {
		return nil, fmt.Errorf("could not decode categories for %s: %w", r.Id, err)
	}

	return &domain.Message{
		ID:             r.Id,
		Subject:        r.Subject,
		Sender:         r.Sender,
		Recipients:     r.Recipients,
		Body:           r.Body,
		ReceivedAt:     r.ReceivedAt,
		ConversationID: r.ConversationId,
		IsRead:         r.IsRead,
		Folder:         r.Folder,
		Categories:     categories,
	}, nil
}

func (r *annotationRow) toAnnotation() *domain.Annotation {
	return &domain.Annotation{
		MessageID:    r.MessageId,
		Category:     r.Category,
		Confidence:   r.Confidence,
		Reasoning:    r.Reasoning,
		Summary:      r.Summary,
		UserCategory: r.UserCategory,
	}
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return &domain.StoreWriteError{Err: fmt.Errorf("could not commit tx: %w", err)}
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}
