package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind enumerates the callback button actions the bot understands.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSelectBranch
	ActionCancel
	ActionConfirmAccept
	ActionConfirmEdit
	ActionConfirmCancel
	ActionAdminDetails
	ActionAdminConfirm
	ActionAdminReject
	ActionAdminBack
	ActionAdminStats
)

// Action is a callback payload decoded once at the transport boundary.
// ID carries the branch or booking identifier where the action has one.
type Action struct {
	Kind ActionKind
	ID   int64
}

// Encode renders the action back into a callback payload string
func (a Action) Encode() string {
	switch a.Kind {
	case ActionSelectBranch:
		return fmt.Sprintf("branch:%d", a.ID)
	case ActionCancel:
		return "cancel"
	case ActionConfirmAccept:
		return "confirm:accept"
	case ActionConfirmEdit:
		return "confirm:edit"
	case ActionConfirmCancel:
		return "confirm:cancel"
	case ActionAdminDetails:
		return fmt.Sprintf("admin:details:%d", a.ID)
	case ActionAdminConfirm:
		return fmt.Sprintf("admin:confirm:%d", a.ID)
	case ActionAdminReject:
		return fmt.Sprintf("admin:reject:%d", a.ID)
	case ActionAdminBack:
		return "admin:back"
	case ActionAdminStats:
		return "admin:stats"
	}
	return ""
}

// DecodeAction parses a callback payload string into a typed action.
// Unrecognized payloads decode to ActionUnknown and are ignored upstream.
func DecodeAction(data string) Action {
	switch data {
	case "cancel":
		return Action{Kind: ActionCancel}
	case "confirm:accept":
		return Action{Kind: ActionConfirmAccept}
	case "confirm:edit":
		return Action{Kind: ActionConfirmEdit}
	case "confirm:cancel":
		return Action{Kind: ActionConfirmCancel}
	case "admin:back":
		return Action{Kind: ActionAdminBack}
	case "admin:stats":
		return Action{Kind: ActionAdminStats}
	}

	if rest, ok := strings.CutPrefix(data, "branch:"); ok {
		return actionWithID(ActionSelectBranch, rest)
	}
	if rest, ok := strings.CutPrefix(data, "admin:details:"); ok {
		return actionWithID(ActionAdminDetails, rest)
	}
	if rest, ok := strings.CutPrefix(data, "admin:confirm:"); ok {
		return actionWithID(ActionAdminConfirm, rest)
	}
	if rest, ok := strings.CutPrefix(data, "admin:reject:"); ok {
		return actionWithID(ActionAdminReject, rest)
	}

	return Action{Kind: ActionUnknown}
}

func actionWithID(kind ActionKind, raw string) Action {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Action{Kind: ActionUnknown}
	}
	return Action{Kind: kind, ID: id}
}
