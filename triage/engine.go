// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"fmt"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"

	"github.com/sirupsen/logrus"
)

// Listing sources for GetEnrichedMessages.
const (
	SourceStore = "store"
	SourceLive  = "live"
)

// Engine reconciles live mailbox state with locally stored classification
// annotations. The mailbox provider and the classifier are optional; every
// operation that needs an absent collaborator fails fast instead of timing
// out against it.
type Engine struct {
	store      domain.Store
	mailbox    domain.MailboxProvider
	classifier domain.AIClassifier

	configuration *configuration

	l *logrus.Logger
}

func NewEngine(store domain.Store, mailbox domain.MailboxProvider, classifier domain.AIClassifier, configFunc ...ConfigFunc) (*Engine, error) {
	config := defaultConfiguration()
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Engine{
		store:         store,
		mailbox:       mailbox,
		classifier:    classifier,
		configuration: config,
		l:             log.Logger(log.LOG_TRIAGE),
	}, nil
}
