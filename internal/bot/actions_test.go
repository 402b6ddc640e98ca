package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAction(t *testing.T) {
	testCases := []struct {
		data     string
		expected Action
	}{
		{"branch:3", Action{Kind: ActionSelectBranch, ID: 3}},
		{"cancel", Action{Kind: ActionCancel}},
		{"confirm:accept", Action{Kind: ActionConfirmAccept}},
		{"confirm:edit", Action{Kind: ActionConfirmEdit}},
		{"confirm:cancel", Action{Kind: ActionConfirmCancel}},
		{"admin:details:7", Action{Kind: ActionAdminDetails, ID: 7}},
		{"admin:confirm:7", Action{Kind: ActionAdminConfirm, ID: 7}},
		{"admin:reject:7", Action{Kind: ActionAdminReject, ID: 7}},
		{"admin:back", Action{Kind: ActionAdminBack}},
		{"admin:stats", Action{Kind: ActionAdminStats}},
		{"", Action{Kind: ActionUnknown}},
		{"branch:", Action{Kind: ActionUnknown}},
		{"branch:abc", Action{Kind: ActionUnknown}},
		{"admin:confirm:", Action{Kind: ActionUnknown}},
		{"something:else", Action{Kind: ActionUnknown}},
	}

	for _, tc := range testCases {
		t.Run(tc.data, func(t *testing.T) {
			assert.Equal(t, tc.expected, DecodeAction(tc.data))
		})
	}
}

func TestActionEncodeRoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: ActionSelectBranch, ID: 12},
		{Kind: ActionCancel},
		{Kind: ActionConfirmAccept},
		{Kind: ActionConfirmEdit},
		{Kind: ActionConfirmCancel},
		{Kind: ActionAdminDetails, ID: 4},
		{Kind: ActionAdminConfirm, ID: 4},
		{Kind: ActionAdminReject, ID: 4},
		{Kind: ActionAdminBack},
		{Kind: ActionAdminStats},
	}

	for _, a := range actions {
		assert.Equal(t, a, DecodeAction(a.Encode()), "round trip for %q", a.Encode())
	}
}
