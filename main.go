// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"time"

	"github.com/tkarrer/mailtriage/aiclient"
	"github.com/tkarrer/mailtriage/api"
	"github.com/tkarrer/mailtriage/config"
	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/graphmail"
	"github.com/tkarrer/mailtriage/log"
	"github.com/tkarrer/mailtriage/store"
	"github.com/tkarrer/mailtriage/triage"

	"github.com/sirupsen/logrus"
)

func main() {
	log.InitLogging("info")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig("config.toml")
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	s, err := store.NewStore(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer s.Close()

	var mailbox domain.MailboxProvider
	if conf.Mailbox.Enabled {
		graph, err := graphmail.NewGraphMail(conf.Mailbox.BaseURL, conf.Mailbox.Token, time.Duration(conf.Mailbox.TimeoutSeconds)*time.Second)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not start mailbox connector")
		}
		mailbox = graph
	} else {
		logger.Warn("Mailbox provider is disabled, live operations will fail fast")
	}

	var classifier domain.AIClassifier
	configs := []triage.ConfigFunc{}
	if len(conf.AI.BaseURL) > 0 {
		client, err := aiclient.NewClient(conf.AI.BaseURL, conf.AI.APIKey)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not start classifier client")
		}
		classifier = client
		configs = append(configs, triage.ModelParams(domain.ModelParams{
			Model:       conf.AI.Model,
			Temperature: conf.AI.Temperature,
			MaxTokens:   conf.AI.MaxTokens,
		}))
	} else {
		logger.Warn("No classifier configured, holistic analysis will fail fast")
	}

	if conf.Triage.BulkConcurrency > 0 {
		configs = append(configs, triage.BulkConcurrency(conf.Triage.BulkConcurrency))
	}
	if conf.Triage.SnippetLength > 0 {
		configs = append(configs, triage.SnippetLength(conf.Triage.SnippetLength))
	}
	if len(conf.Triage.UserContext) > 0 {
		configs = append(configs, triage.UserContext(conf.Triage.UserContext))
	}

	engine, err := triage.NewEngine(s, mailbox, classifier, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start triage engine")
	}

	server := api.NewServer(engine)
	logger.WithFields(logrus.Fields{"listen": conf.Listen, "mailbox": conf.Mailbox.Enabled, "classifier": classifier != nil}).Info("Starting mailtriage")
	if err := server.ListenAndServe(conf.Listen); err != nil {
		logger.WithField("error", err).Fatal("Server stopped")
	}
}
