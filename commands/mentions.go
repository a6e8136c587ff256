package commands

import (
	"regexp"
	"strings"

	"wahabot/models"
)

// WADomains are the three identity domains a mention suffix can carry:
// plain phone, label, and routing jid
var WADomains = []string{"c.us", "lid", "s.whatsapp.net"}

var (
	// wireMentionRe matches a full wire-format mention token @<id>@<domain>
	wireMentionRe = regexp.MustCompile(`@(\d+)@(c\.us|lid|s\.whatsapp\.net)`)
	// bareMentionRe matches the compact receive-side form @<id>
	bareMentionRe = regexp.MustCompile(`@(\d+)`)
	// mentionTokenRe classifies a single token as a mention: a bare id or
	// the all/everyone keyword, optionally followed by a domain suffix
	mentionTokenRe = regexp.MustCompile(`^@(\d+|all|everyone)\b(@(?:c\.us|lid|s\.whatsapp\.net))?`)
	// deviceSuffixRe matches the device part of a raw label, e.g. ":12"
	deviceSuffixRe = regexp.MustCompile(`:\d+`)
)

// IsMentionToken reports whether a whitespace-trimmed token is a mention
func IsMentionToken(token string) bool {
	return mentionTokenRe.MatchString(strings.TrimSpace(token))
}

// mentionBareID extracts the mention target from a mention token - the bare
// numeric id or keyword, discarding any domain suffix. Returns "" for
// non-mention tokens.
func mentionBareID(token string) string {
	match := mentionTokenRe.FindStringSubmatch(strings.TrimSpace(token))
	if match == nil {
		return ""
	}
	return match[1]
}

// EncodeForSending rewrites wire-format mention tokens @<id>@<domain> in an
// outgoing text to the compact @<id> form the gateway renders, and returns
// the deduplicated set of full id@domain tokens to attach to the message
func EncodeForSending(text string) (string, []string) {
	var mentions []string
	seen := make(map[string]bool)
	for _, match := range wireMentionRe.FindAllStringSubmatch(text, -1) {
		token := match[1] + "@" + match[2]
		if !seen[token] {
			seen[token] = true
			mentions = append(mentions, token)
		}
	}

	return wireMentionRe.ReplaceAllString(text, "@$1"), mentions
}

// HasMentions reports whether an outgoing text contains wire-format mentions
func HasMentions(text string) bool {
	return wireMentionRe.MatchString(text)
}

// BareMentions returns the deduplicated bare ids mentioned in a received text
func BareMentions(text string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, match := range bareMentionRe.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}
	return ids
}

// IsMentioned reports whether a received text mentions the bot itself under
// any of the supported identity domains
func IsMentioned(text string, own *models.OwnIdentity) bool {
	if own == nil {
		return false
	}

	candidates := make(map[string]bool)
	for _, id := range BareMentions(text) {
		for _, domain := range WADomains {
			candidates[id+"@"+domain] = true
		}
	}

	for _, identity := range []string{own.ID, own.JID, own.Label} {
		if identity != "" && candidates[identity] {
			return true
		}
	}
	return false
}

// IsTarget reports whether a participant identifier refers to the identity
// described by the id/jid/label triple. The bare id is compared against all
// three fields under every supported domain suffix.
func IsTarget(value, id, jid, label string) bool {
	if value == "" {
		return false
	}

	for _, identity := range []string{id, jid, label} {
		if identity != "" && value == identity {
			return true
		}
	}

	bare := strings.TrimPrefix(value, "@")
	if at := strings.Index(bare, "@"); at >= 0 {
		bare = bare[:at]
	}
	if bare == "" {
		return false
	}

	for _, domain := range WADomains {
		candidate := bare + "@" + domain
		for _, identity := range []string{id, jid, label} {
			if identity != "" && candidate == identity {
				return true
			}
		}
	}
	return false
}

// CleanupLabel normalizes a raw label identifier by stripping whitespace and
// the per-device suffix, e.g. "123456:12@lid" becomes "123456@lid"
func CleanupLabel(raw string) string {
	return deviceSuffixRe.ReplaceAllString(strings.TrimSpace(raw), "")
}
