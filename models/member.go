package models

// GroupMember is one participant of a group chat as reported by the gateway.
// Exactly which identity fields are populated depends on the member's
// registration: ID is either a phone-suffixed or label-suffixed identifier,
// JID is the routing id, LID is the label id.
type GroupMember struct {
	ID    string
	JID   string
	LID   string
	Admin string
}

// MentionTarget returns the preferred identity to mention this member by,
// trying label, plain id and routing id in that order
func (m GroupMember) MentionTarget() string {
	if m.LID != "" {
		return m.LID
	}
	if m.ID != "" {
		return m.ID
	}
	return m.JID
}

// IsAdmin reports whether the member holds any admin role in the group
func (m GroupMember) IsAdmin() bool {
	return m.Admin != ""
}
