package audit

import (
	"context"

	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// Audit actions.
const (
	ActionChatJoin       = "chat.join"
	ActionChatSend       = "chat.send"
	ActionChatDenied     = "chat.denied"
	ActionChatDisconnect = "chat.disconnect"
	ActionOTPSent        = "partner.otp_sent"
	ActionOTPVerified    = "partner.otp_verified"
	ActionOTPFailed      = "partner.otp_failed"
	ActionKYCVerified    = "partner.kyc_verified"
	ActionStatusChanged  = "partner.status_changed"
	ActionBookingAccept  = "booking.accepted"
	ActionBookingCancel  = "booking.cancelled"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, actorID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, actorID).
		Msg(msg)
}

// LogWithTarget emits an audit log with the entity the action touched.
func LogWithTarget(ctx context.Context, action string, actorID string, targetID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, actorID).
		Str(FieldTargetID, targetID).
		Msg(msg)
}
