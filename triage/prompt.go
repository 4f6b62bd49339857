// SPDX-License-Identifier: GPL-3.0-or-later
package triage

import (
	"fmt"
	"strings"
	"time"
)

const holisticInstructions = `You will receive a batch of emails. Reason over them together and classify
every email into exactly one of: truly-relevant, superseded, duplicate, expired.
For superseded and duplicate emails, set canonical_id to the id of the email
that replaces them. Respond with a single JSON object and nothing else:
{"verdicts":[{"id":"...","verdict":"truly-relevant","priority":"high|medium|low","blocks_others":false,"canonical_id":""}]}`

func (e *Engine) systemPrompt(now time.Time) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "You are an email triage assistant. Today's date is %s.\n", now.Format("2006-01-02"))
	if e.configuration.UserContext != "" {
		fmt.Fprintf(b, "Context about the user: %s\n", e.configuration.UserContext)
	}
	b.WriteString(holisticInstructions)

	return b.String()
}

func (e *Engine) batchPrompt(resolved []*resolvedMessage) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Analyze the following %d emails together.\n\n", len(resolved))

	for i, r := range resolved {
		m := r.message
		fmt.Fprintf(b, "Email %d\n", i+1)
		fmt.Fprintf(b, "ID: %s\n", m.ID)
		fmt.Fprintf(b, "Subject: %s\n", m.Subject)
		fmt.Fprintf(b, "From: %s\n", m.Sender)
		fmt.Fprintf(b, "Received: %s\n", m.ReceivedAt.Format(time.RFC3339))
		if r.annotation != nil {
			if category := r.annotation.EffectiveCategory(); category != "" {
				fmt.Fprintf(b, "Current category: %s\n", category)
			}
			if r.annotation.Summary != "" {
				fmt.Fprintf(b, "Summary: %s\n", r.annotation.Summary)
			}
		}
		fmt.Fprintf(b, "Body: %s\n\n", snippet(m.Body, e.configuration.SnippetLength))
	}

	return b.String()
}

// snippet truncates on rune boundaries so a multibyte character at the cap
// never leaves invalid UTF-8 in the prompt.
func snippet(body string, maxChars int) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) > maxChars {
		body = string(runes[:maxChars]) + "..."
	}

	return body
}
