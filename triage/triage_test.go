// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"io"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/domain/mocks"

	"github.com/sirupsen/logrus"
)

func newTestEngine(store *mocks.MockStore, mailbox *mocks.MockMailboxProvider, classifier *mocks.MockAIClassifier) *Engine {
	engine := &Engine{
		configuration: defaultConfiguration(),
		l:             nullLogger(),
	}
	if store != nil {
		engine.store = store
	}
	if mailbox != nil {
		engine.mailbox = mailbox
	}
	if classifier != nil {
		engine.classifier = classifier
	}

	return engine
}

func nullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func f(val float64) *float64 {
	return &val
}

func message(id, subject, folder string) *domain.Message {
	return &domain.Message{
		ID:      id,
		Subject: subject,
		Folder:  folder,
	}
}
