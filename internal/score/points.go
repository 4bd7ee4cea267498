package score

// Reason identifies the platform action behind a point delta.
type Reason string

const (
	ReasonCreatePost         Reason = "create_post"
	ReasonAddReply           Reason = "add_reply"
	ReasonRefineIdea         Reason = "refine_idea"
	ReasonSignupBonus        Reason = "signup_bonus"
	ReasonActivationCode     Reason = "activation_code"
	ReasonJoinCollaboration  Reason = "join_collaboration"
	ReasonLeaveCollaboration Reason = "leave_collaboration"
)

// Point amounts per reason. Tunable constants, not protocol-fixed; join and
// leave must stay symmetric so a join/leave round trip nets zero.
var points = map[Reason]int64{
	ReasonCreatePost:         10,
	ReasonAddReply:           5,
	ReasonRefineIdea:         20,
	ReasonSignupBonus:        2,
	ReasonActivationCode:     50,
	ReasonJoinCollaboration:  3,
	ReasonLeaveCollaboration: -3,
}

// Points returns the signed delta for a reason, or 0 for an unknown reason.
func Points(reason Reason) int64 {
	return points[reason]
}

// KnownReason reports whether reason is part of the fixed enumeration.
func KnownReason(reason Reason) bool {
	_, ok := points[reason]
	return ok
}
