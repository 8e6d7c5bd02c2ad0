package foxapi

// Status is the header shared by every result: success, or the service's
// error string and code.
type Status struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Raw       string `json:"-"`

	action Action
}

// Err returns a *ServerError for a logical failure and nil on success.
func (s Status) Err() error {
	if s.Success {
		return nil
	}
	return &ServerError{Action: s.action, Code: s.ErrorCode, Message: s.Error}
}

// Action returns the action that produced this status.
func (s Status) Action() Action {
	return s.action
}

// LoginParams are the credentials for the login action.
type LoginParams struct {
	APIName  string
	Password string
}

// LoginResult carries the session token on success.
type LoginResult struct {
	Status
	Token string `json:"token,omitempty"`
}

// AccountInfo is the result of myInfo.
type AccountInfo struct {
	Status
	Balance float64 `json:"balance"`
	Level   int     `json:"level"`
	Points  int     `json:"points"`
}

// GetPhoneParams selects the number to lease. Only ProjectID is required by the service.
type GetPhoneParams struct {
	Token        string
	ProjectID    string // iid
	Country      string // country code, empty for any
	DeviceID     string // did, developer id
	WantDockCode bool   // dock=1 asks for a dock code
	MaxPrice     float64
	Mobile       string // number or prefix to pin
	PushURL      string
}

// PhoneLease is one rented number.
type PhoneLease struct {
	Status
	Pkey            string `json:"pkey,omitempty"`
	FetchedAt       string `json:"fetchedAt,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
	CountryDialCode string `json:"countryDialCode,omitempty"`
	Location        string `json:"location,omitempty"`
	Port            string `json:"port,omitempty"`
	Mobile          string `json:"mobile,omitempty"`
	DockCode        string `json:"dockCode,omitempty"`
}

// GetMessageParams identifies the lease to poll.
type GetMessageParams struct {
	Token string
	Pkey  string
}

// Message is a received SMS. Code is empty when no pattern matched.
type Message struct {
	Status
	SMS        string `json:"sms,omitempty"`
	Code       string `json:"code,omitempty"`
	ReceivedAt string `json:"receivedAt,omitempty"`
}

// HasCode reports whether a verification code was recognised in the SMS.
func (m *Message) HasCode() bool {
	return m.Code != ""
}

// SendSmsParams sends an outbound SMS from a leased number.
type SendSmsParams struct {
	Token   string
	Pkey    string
	Message string
	Voice   bool
}

// SendResult carries the id used to query delivery status.
type SendResult struct {
	Status
	SendID string `json:"sendId,omitempty"`
}

// GetSmsStatusParams identifies an outbound SMS.
type GetSmsStatusParams struct {
	Token  string
	SendID string
}

// SmsStatus is the delivery receipt of an outbound SMS.
type SmsStatus struct {
	Status
	State string `json:"status,omitempty"`
}

// LeaseParams identifies a lease for release.
type LeaseParams struct {
	Token string
	Pkey  string
}

// BlacklistParams blacklists a number.
type BlacklistParams struct {
	Token  string
	Pkey   string
	Reason string
}

// Feedback remarks accepted by apiReturn. Free text is accepted too.
const (
	RemarkOK       = "0"
	RemarkNoSMS    = "-1"
	RemarkBadCode  = "-2"
	RemarkOtherErr = "-3"
)

// FeedbackParams reports the outcome of a lease.
type FeedbackParams struct {
	Token  string
	Pkey   string
	Remark string
}

// DefaultReuseMinutes is sent when ReuseParams.MinutesDelay is zero.
const DefaultReuseMinutes = 5

// ReuseParams asks to reuse a number after a delay (2-300 minutes).
type ReuseParams struct {
	Token        string
	Pkey         string
	MinutesDelay int
}

// PriceListParams filters the price list by project name.
type PriceListParams struct {
	Keyword string
}

// PriceList is the result of getItem.
type PriceList struct {
	Status
	Items []PriceItem `json:"items"`
}
