package botcmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wahabot/dispatch"
)

// RegisterBuiltins populates a registry with the built-in handlers. All
// registration happens here, explicitly, before the server starts serving.
func RegisterBuiltins(registry *dispatch.Registry) {
	registry.
		RegisterCommand("pull", HandlePull).
		RegisterCommand("@poll", HandleCreatePoll).
		RegisterMention("all", HandleMentionAll).
		RegisterMention("everyone", HandleMentionAll).
		RegisterSessionHandler(LogSessionStatus)
}

// HandlePull replies with a pull acknowledgement, echoing the first argument
// when one is given.
// Accepts: "pull", "@<bot_number> pull", "pull @<bot_number>.", "pull 42"
func HandlePull(ctx context.Context, req *dispatch.Request) (dispatch.Result, error) {
	text := "Pulling latest events..."
	if len(req.Args) > 0 && req.Args[0] != "" {
		text = fmt.Sprintf("Pulling event %s", req.Args[0])
	}

	resp, err := req.Messenger.Send(ctx, req.ChatID, text, req.MessageID)
	if err != nil {
		return nil, err
	}
	return dispatch.Result(resp), nil
}

// HandleMentionAll replies to @all/@everyone in a group with a mention of
// every member except the bot itself. Outside groups it acknowledges and
// does nothing.
func HandleMentionAll(ctx context.Context, req *dispatch.Request) (dispatch.Result, error) {
	if !req.Parsed.IsGroup {
		return dispatch.Result{"status": "ok"}, nil
	}

	tokens, err := req.Messenger.MentionTokensForGroup(ctx, req.ChatID, req.Parsed.Own, false)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return dispatch.Result{"status": "empty"}, nil
	}

	resp, err := req.Messenger.Send(ctx, req.ChatID, strings.Join(tokens, " | "), req.MessageID)
	if err != nil {
		return nil, err
	}
	return dispatch.Result(resp), nil
}

// HandleCreatePoll announces a poll (mentioning group admins when in a
// group), then creates a five-option multi-answer poll titled from the
// command arguments, replying to the announcement message
func HandleCreatePoll(ctx context.Context, req *dispatch.Request) (dispatch.Result, error) {
	title := strings.Join(req.Args, " ")
	if title == "" {
		title = "Poll title"
	}

	messages := []string{"New poll incoming"}
	if req.Parsed.IsGroup {
		admins, err := req.Messenger.MentionTokensForGroup(ctx, req.ChatID, req.Parsed.Own, true)
		if err != nil {
			return nil, err
		}
		messages = append(messages, strings.Join(admins, " "))
	}

	log.Printf("📋 Creating poll %q in %s", title, req.ChatID)

	announce, err := req.Messenger.Send(ctx, req.ChatID, strings.Join(messages, "\n"), "")
	if err != nil {
		return nil, err
	}

	replyTo := ""
	if key, ok := announce["key"].(map[string]any); ok {
		if id, ok := key["id"].(string); ok && id != "" {
			fromMe := true
			if flag, ok := key["fromMe"].(bool); ok {
				fromMe = flag
			}
			replyTo = fmt.Sprintf("%t_%s_%s", fromMe, req.ChatID, id)
		}
	}

	options := make([]string, 5)
	for i := range options {
		options[i] = fmt.Sprintf("Option %d", i+1)
	}

	resp, err := req.Messenger.CreatePoll(ctx, req.ChatID, title, options, true, replyTo)
	if err != nil {
		return nil, err
	}
	return dispatch.Result(resp), nil
}

// LogSessionStatus records session lifecycle transitions
func LogSessionStatus(ctx context.Context, req *dispatch.SessionRequest) error {
	log.Printf("📨 Session status changed to %s", req.Status)
	return nil
}
