package foxapi

import "sort"

// Error codes documented by the service, per action. The client never acts on
// them; they only make logical failures readable.
const (
	LoginEmptyUsername       = -1
	LoginUsernameLength      = -2
	LoginUsernameInvalidChar = -3
	LoginUsernameNoChinese   = -4
	LoginEmptyPassword       = -5
	LoginPasswordLength      = -6
	LoginIPWait              = -7
	LoginAccountDisabled     = -8
	LoginWrongCredentials    = -9

	AccountTokenNotExist      = -1
	AccountTokenExpired       = -2
	AccountRequestTooFrequent = -3

	PhoneNoneAvailable      = -1
	PhoneTokenNotExist      = -2
	PhoneInvalidProject     = -3
	PhoneInvalidCountry     = -4
	PhoneProjectNotApproved = -5
	PhoneProjectDisabled    = -6
	PhoneUserDisabled       = -7
	PhoneInsufficientFunds  = -8
	PhoneTooManyOccupied    = -9
	PhoneNoSpecifyAllowed   = -10

	MessageTokenNotExist = -1
	MessageInvalidPkey   = -2
	MessageNotYet        = -3

	ReleaseTokenNotExist = -1
	ReleaseInvalidPkey   = -2
	ReleasePhoneNotExist = -3
	ReleaseAlreadyCoded  = -4
	ReleaseSmsSubmitted  = -5
	ReleaseExceedLimit   = -6

	BlacklistTokenNotExist    = -1
	BlacklistInvalidPkey      = -2
	BlacklistEmptyReason      = -3
	BlacklistPhoneNotExist    = -4
	BlacklistNotCoded         = -5
	BlacklistPermissionDenied = -6

	FeedbackTokenNotExist   = -1
	FeedbackInvalidPkey     = -2
	FeedbackEmptyRemark     = -3
	FeedbackNoPermission    = -4
	FeedbackNoAPIPermission = -5

	ReuseTokenNotExist = -1
	ReuseInvalidPkey   = -2
	ReuseInvalidMin    = -3
	ReusePhoneNotExist = -4
	ReuseNotCoded      = -5
)

var codeTables = map[Action]map[int]string{
	ActionLogin: {
		LoginEmptyUsername:       "username is empty",
		LoginUsernameLength:      "username length is invalid",
		LoginUsernameInvalidChar: "username contains invalid characters",
		LoginUsernameNoChinese:   "username must not contain Chinese characters",
		LoginEmptyPassword:       "password is empty",
		LoginPasswordLength:      "password length is invalid",
		LoginIPWait:              "too many attempts from this IP, wait one minute",
		LoginAccountDisabled:     "account is disabled",
		LoginWrongCredentials:    "wrong username or password",
	},
	ActionMyInfo: {
		AccountTokenNotExist:      "token does not exist",
		AccountTokenExpired:       "token has expired",
		AccountRequestTooFrequent: "requests are too frequent",
	},
	ActionGetPhone: {
		PhoneNoneAvailable:      "no number available",
		PhoneTokenNotExist:      "token does not exist",
		PhoneInvalidProject:     "invalid project id",
		PhoneInvalidCountry:     "invalid country code",
		PhoneProjectNotApproved: "project is not approved",
		PhoneProjectDisabled:    "project is disabled",
		PhoneUserDisabled:       "user is disabled",
		PhoneInsufficientFunds:  "insufficient balance",
		PhoneTooManyOccupied:    "too many numbers currently occupied",
		PhoneNoSpecifyAllowed:   "specifying a number is not allowed",
	},
	ActionGetMessage: {
		MessageTokenNotExist: "token does not exist",
		MessageInvalidPkey:   "invalid pkey",
		MessageNotYet:        "no message yet",
	},
	ActionRelease: {
		ReleaseTokenNotExist: "token does not exist",
		ReleaseInvalidPkey:   "invalid pkey",
		ReleasePhoneNotExist: "number does not exist",
		ReleaseAlreadyCoded:  "number already received a code",
		ReleaseSmsSubmitted:  "an SMS was already submitted",
		ReleaseExceedLimit:   "release limit exceeded",
	},
	ActionBlacklist: {
		BlacklistTokenNotExist:    "token does not exist",
		BlacklistInvalidPkey:      "invalid pkey",
		BlacklistEmptyReason:      "reason is empty",
		BlacklistPhoneNotExist:    "number does not exist",
		BlacklistNotCoded:         "number has not received a code",
		BlacklistPermissionDenied: "permission denied",
	},
	ActionFeedback: {
		FeedbackTokenNotExist:   "token does not exist",
		FeedbackInvalidPkey:     "invalid pkey",
		FeedbackEmptyRemark:     "remark is empty",
		FeedbackNoPermission:    "no permission",
		FeedbackNoAPIPermission: "no API permission",
	},
	ActionReuse: {
		ReuseTokenNotExist: "token does not exist",
		ReuseInvalidPkey:   "invalid pkey",
		ReuseInvalidMin:    "minutes must be between 2 and 300",
		ReusePhoneNotExist: "number does not exist",
		ReuseNotCoded:      "number has not received a code",
	},
}

// LookupCode returns the documented meaning of an error code for an action.
func LookupCode(action Action, code int) (string, bool) {
	table, ok := codeTables[action]
	if !ok {
		return "", false
	}
	meaning, ok := table[code]
	return meaning, ok
}

// CodeEntry is one row of an action's error-code table.
type CodeEntry struct {
	Code    int    `json:"code"`
	Meaning string `json:"meaning"`
}

// CodeTable returns an action's documented codes ordered -1, -2, ...
func CodeTable(action Action) []CodeEntry {
	table := codeTables[action]
	entries := make([]CodeEntry, 0, len(table))
	for code, meaning := range table {
		entries = append(entries, CodeEntry{Code: code, Meaning: meaning})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code > entries[j].Code })
	return entries
}

// DocumentedActions returns the actions that have an error-code table.
func DocumentedActions() []Action {
	return []Action{
		ActionLogin,
		ActionMyInfo,
		ActionGetPhone,
		ActionGetMessage,
		ActionRelease,
		ActionBlacklist,
		ActionFeedback,
		ActionReuse,
	}
}
