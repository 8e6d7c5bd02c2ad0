package foxapi

// Action is the value of the `act` query parameter that selects an operation.
type Action string

const (
	ActionLogin        Action = "login"
	ActionMyInfo       Action = "myInfo"
	ActionGetPhone     Action = "getPhone"
	ActionGetMessage   Action = "getMessage"
	ActionSendSms      Action = "sendSms"
	ActionGetSmsStatus Action = "getSmsStatus"
	ActionRelease      Action = "setRel"
	ActionBlacklist    Action = "addBlack"
	ActionFeedback     Action = "apiReturn"
	ActionReuse        Action = "setAgain"
	ActionGetItem      Action = "getItem"
)

// Field names used in the decode table.
const (
	FieldToken           = "token"
	FieldBalance         = "balance"
	FieldLevel           = "level"
	FieldPoints          = "points"
	FieldPkey            = "pkey"
	FieldFetchedAt       = "fetched_at"
	FieldCountryCode     = "country_code"
	FieldCountryDialCode = "country_dial_code"
	FieldLocation        = "location"
	FieldPort            = "port"
	FieldMobile          = "mobile"
	FieldDockCode        = "dock_code"
	FieldSMS             = "sms"
	FieldReceivedAt      = "received_at"
	FieldSendID          = "send_id"
	FieldStatus          = "status"
)

// fieldLayouts maps each action to the ordered names of its success fields.
// Actions absent from the table carry no positional fields.
var fieldLayouts = map[Action][]string{
	ActionLogin:  {FieldToken},
	ActionMyInfo: {FieldBalance, FieldLevel, FieldPoints},
	ActionGetPhone: {
		FieldPkey,
		FieldFetchedAt,
		FieldCountryCode,
		FieldCountryDialCode,
		FieldLocation,
		FieldPort,
		FieldMobile,
		FieldDockCode,
	},
	ActionGetMessage:   {FieldSMS, FieldReceivedAt},
	ActionSendSms:      {FieldSendID},
	ActionGetSmsStatus: {FieldStatus},
}

// FieldLayout returns a copy of the ordered success fields for an action.
func FieldLayout(action Action) []string {
	layout := fieldLayouts[action]
	out := make([]string, len(layout))
	copy(out, layout)
	return out
}

// requiresToken lists the actions that cannot run without a session token.
var requiresToken = map[Action]bool{
	ActionMyInfo:       true,
	ActionGetPhone:     true,
	ActionGetMessage:   true,
	ActionSendSms:      true,
	ActionGetSmsStatus: true,
	ActionRelease:      true,
	ActionBlacklist:    true,
	ActionFeedback:     true,
	ActionReuse:        true,
}

// RequiresToken reports whether an action needs a session token.
func RequiresToken(action Action) bool {
	return requiresToken[action]
}
