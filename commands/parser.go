package commands

import (
	"strings"

	"wahabot/models"
)

// punctExceptAt is ASCII punctuation with '@' excluded, so mention tokens
// survive cleaning
const punctExceptAt = "!\"#$%&'()*+,-./:;<=>?[\\]^_`{|}~"

// cleanToken trims a token and strips all punctuation except '@'
func cleanToken(token string) string {
	token = strings.TrimSpace(token)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctExceptAt, r) {
			return -1
		}
		return r
	}, token)
}

// ParseCommand tokenizes a message body into a command, positional
// arguments, and the mention list. Mention tokens (bare ids and the
// all/everyone keywords) are classified before punctuation cleaning so
// domain suffixes keep their dots; only the bare target is retained.
// Mentions are deduplicated in first-seen order.
func ParseCommand(text string) models.CommandInvocation {
	var mentions []string
	seenMentions := make(map[string]bool)
	var words []string

	for _, token := range strings.Fields(text) {
		if bare := mentionBareID(token); bare != "" {
			if !seenMentions[bare] {
				seenMentions[bare] = true
				mentions = append(mentions, bare)
			}
			continue
		}

		cleaned := cleanToken(token)
		if cleaned == "" {
			continue
		}
		words = append(words, cleaned)
	}

	if len(words) == 0 {
		return models.CommandInvocation{Mentions: mentions}
	}

	return models.CommandInvocation{
		Command:  strings.ToLower(words[0]),
		Args:     words[1:],
		Mentions: mentions,
	}
}
