package foxapi

import (
	"context"
	"strconv"
	"strings"
)

// Login exchanges credentials for a session token and stores it on the client.
func (c *Client) Login(ctx context.Context, p LoginParams) (*LoginResult, error) {
	env, err := c.call(ctx, ActionLogin, params{
		{key: "ApiName", value: p.APIName},
		{key: "PassWord", value: p.Password},
	})
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Status: env.Status()}
	if result.Success {
		result.Token = env.Field(FieldToken)
		c.token = result.Token
	}
	return result, nil
}

// GetAccountInfo returns balance, level and points. It requires a stored
// token and fails without a request when there is none.
func (c *Client) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	if !c.HasToken() {
		recordOutcome(ActionMyInfo, OutcomePrecondition)
		return nil, NewNotLoggedInError(ActionMyInfo)
	}

	env, err := c.call(ctx, ActionMyInfo, params{
		{key: "token", value: c.token},
	})
	if err != nil {
		return nil, err
	}

	result := &AccountInfo{Status: env.Status()}
	if result.Success {
		result.Balance = parseFloat(env.Field(FieldBalance))
		result.Level = parseInt(env.Field(FieldLevel))
		result.Points = parseInt(env.Field(FieldPoints))
	}
	return result, nil
}

// GetPhone leases a number for a project.
func (c *Client) GetPhone(ctx context.Context, p GetPhoneParams) (*PhoneLease, error) {
	token, err := c.resolveToken(ActionGetPhone, p.Token)
	if err != nil {
		return nil, err
	}

	dock := ""
	if p.WantDockCode {
		dock = "1"
	}

	env, err := c.call(ctx, ActionGetPhone, params{
		{key: "token", value: token},
		{key: "iid", value: p.ProjectID},
		{key: "country", value: p.Country},
		{key: "did", value: p.DeviceID},
		{key: "dock", value: dock},
		{key: "maxPrice", value: formatFloat(p.MaxPrice)},
		{key: "mobile", value: p.Mobile},
		{key: "pushUrl", value: p.PushURL},
	})
	if err != nil {
		return nil, err
	}

	result := &PhoneLease{Status: env.Status()}
	if result.Success {
		result.Pkey = env.Field(FieldPkey)
		result.FetchedAt = env.Field(FieldFetchedAt)
		result.CountryCode = env.Field(FieldCountryCode)
		result.CountryDialCode = env.Field(FieldCountryDialCode)
		result.Location = env.Field(FieldLocation)
		result.Port = env.Field(FieldPort)
		result.Mobile = env.Field(FieldMobile)
		result.DockCode = env.Field(FieldDockCode)
	}
	return result, nil
}

// GetMessage polls a lease once. A logical failure (typically "no message
// yet") is returned as an unsuccessful result; polling is up to the caller.
func (c *Client) GetMessage(ctx context.Context, p GetMessageParams) (*Message, error) {
	token, err := c.resolveToken(ActionGetMessage, p.Token)
	if err != nil {
		return nil, err
	}

	env, err := c.call(ctx, ActionGetMessage, params{
		{key: "token", value: token},
		{key: "pkey", value: p.Pkey},
	})
	if err != nil {
		return nil, err
	}

	result := &Message{Status: env.Status()}
	if result.Success {
		result.SMS = env.Field(FieldSMS)
		result.ReceivedAt = env.Field(FieldReceivedAt)
		result.Code, _ = ExtractCode(result.SMS)
	}
	return result, nil
}

// SendSms sends an SMS (or voice message) from a leased number.
func (c *Client) SendSms(ctx context.Context, p SendSmsParams) (*SendResult, error) {
	token, err := c.resolveToken(ActionSendSms, p.Token)
	if err != nil {
		return nil, err
	}

	voice := "0"
	if p.Voice {
		voice = "1"
	}

	env, err := c.call(ctx, ActionSendSms, params{
		{key: "token", value: token},
		{key: "pkey", value: p.Pkey},
		{key: "msg", value: p.Message},
		{key: "voice", value: voice},
	})
	if err != nil {
		return nil, err
	}

	result := &SendResult{Status: env.Status()}
	if result.Success {
		result.SendID = env.Field(FieldSendID)
	}
	return result, nil
}

// GetSmsStatus returns the delivery receipt of an outbound SMS.
func (c *Client) GetSmsStatus(ctx context.Context, p GetSmsStatusParams) (*SmsStatus, error) {
	token, err := c.resolveToken(ActionGetSmsStatus, p.Token)
	if err != nil {
		return nil, err
	}

	env, err := c.call(ctx, ActionGetSmsStatus, params{
		{key: "token", value: token},
		{key: "sendId", value: p.SendID},
	})
	if err != nil {
		return nil, err
	}

	result := &SmsStatus{Status: env.Status()}
	if result.Success {
		result.State = env.Field(FieldStatus)
	}
	return result, nil
}

// ReleasePhone ends a lease.
func (c *Client) ReleasePhone(ctx context.Context, p LeaseParams) (*Status, error) {
	return c.leaseAction(ctx, ActionRelease, p.Token, params{
		{key: "pkey", value: p.Pkey},
	})
}

// BlacklistPhone blacklists a leased number with a reason.
func (c *Client) BlacklistPhone(ctx context.Context, p BlacklistParams) (*Status, error) {
	return c.leaseAction(ctx, ActionBlacklist, p.Token, params{
		{key: "pkey", value: p.Pkey},
		{key: "reason", value: p.Reason},
	})
}

// FeedbackStatus reports the outcome of a lease (see the Remark constants).
func (c *Client) FeedbackStatus(ctx context.Context, p FeedbackParams) (*Status, error) {
	return c.leaseAction(ctx, ActionFeedback, p.Token, params{
		{key: "pkey", value: p.Pkey},
		{key: "remark", value: p.Remark},
	})
}

// ReuseNumber asks for the same number again after MinutesDelay minutes.
func (c *Client) ReuseNumber(ctx context.Context, p ReuseParams) (*Status, error) {
	minutes := p.MinutesDelay
	if minutes == 0 {
		minutes = DefaultReuseMinutes
	}
	return c.leaseAction(ctx, ActionReuse, p.Token, params{
		{key: "pkey", value: p.Pkey},
		{key: "min", value: strconv.Itoa(minutes)},
	})
}

// leaseAction runs an action whose success carries no fields.
func (c *Client) leaseAction(ctx context.Context, action Action, explicitToken string, rest params) (*Status, error) {
	token, err := c.resolveToken(action, explicitToken)
	if err != nil {
		return nil, err
	}

	p := params{{key: "token", value: token}}
	p = append(p, rest...)

	env, err := c.call(ctx, action, p)
	if err != nil {
		return nil, err
	}
	status := env.Status()
	return &status, nil
}

// GetPriceList fetches the price list. A payload that is not valid JSON is a
// local parse error, reported as an *Error of type ErrTypeParse.
func (c *Client) GetPriceList(ctx context.Context, p PriceListParams) (*PriceList, error) {
	env, err := c.call(ctx, ActionGetItem, params{
		{key: "key", value: p.Keyword},
	})
	if err != nil {
		return nil, err
	}

	result := &PriceList{Status: env.Status()}
	if !result.Success {
		return result, nil
	}

	items, err := DecodePriceItems(env.Payload)
	if err != nil {
		recordOutcome(ActionGetItem, OutcomeParseError)
		return nil, NewParseError(ActionGetItem, "failed to parse price list", err)
	}
	recordOutcome(ActionGetItem, OutcomeSuccess)
	result.Items = items
	return result, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// "12.0" style values
	return int(parseFloat(s))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
