package models

// CommandInvocation is the result of tokenizing a message body into a
// command, its positional arguments, and the mentions it carried
type CommandInvocation struct {
	// Command is the lowercased first non-mention token, empty if none
	Command string
	// Args are the remaining non-mention tokens with original casing
	Args []string
	// Mentions are bare numeric ids, deduplicated, in first-seen order
	Mentions []string
}
