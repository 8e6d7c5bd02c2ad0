package receiver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/foxsms/internal/foxapi"
)

// fakeAPI serves scripted getMessage replies and records calls.
type fakeAPI struct {
	mu sync.Mutex

	lease    *foxapi.PhoneLease
	leaseErr error
	messages []func() (*foxapi.Message, error) // consumed in order; the last one repeats
	release  *foxapi.Status

	phoneCalls   []foxapi.GetPhoneParams
	messageCalls int
	released     []string
}

func (f *fakeAPI) GetPhone(ctx context.Context, p foxapi.GetPhoneParams) (*foxapi.PhoneLease, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phoneCalls = append(f.phoneCalls, p)
	if f.leaseErr != nil {
		return nil, f.leaseErr
	}
	lease := *f.lease
	return &lease, nil
}

func (f *fakeAPI) GetMessage(ctx context.Context, p foxapi.GetMessageParams) (*foxapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.messageCalls
	if i >= len(f.messages) {
		i = len(f.messages) - 1
	}
	f.messageCalls++
	return f.messages[i]()
}

func (f *fakeAPI) ReleasePhone(ctx context.Context, p foxapi.LeaseParams) (*foxapi.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, p.Pkey)
	if f.release != nil {
		return f.release, nil
	}
	return &foxapi.Status{Success: true}, nil
}

func notYet() (*foxapi.Message, error) {
	return &foxapi.Message{Status: foxapi.Status{Success: false, Error: "-3", ErrorCode: foxapi.MessageNotYet}}, nil
}

func arrived(sms, code string) func() (*foxapi.Message, error) {
	return func() (*foxapi.Message, error) {
		return &foxapi.Message{Status: foxapi.Status{Success: true}, SMS: sms, Code: code}, nil
	}
}

func transportFailure() (*foxapi.Message, error) {
	return nil, foxapi.NewHTTPError(foxapi.ActionGetMessage, 502, "bad gateway")
}

func fastOptions() Options {
	return Options{Interval: time.Millisecond, Timeout: time.Second, ReleaseOnTimeout: true}
}

func okLease() *foxapi.PhoneLease {
	return &foxapi.PhoneLease{Status: foxapi.Status{Success: true}, Pkey: "pk1", Mobile: "13800138000"}
}

func TestWaitForMessage_ArrivesAfterPolling(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){
		notYet,
		transportFailure,
		notYet,
		arrived("验证码：1234", "1234"),
	}}

	var attempts []Attempt
	opts := fastOptions()
	opts.OnAttempt = func(a Attempt) { attempts = append(attempts, a) }

	msg, err := WaitForMessage(context.Background(), api, "tok", "pk1", opts)
	require.NoError(t, err)
	assert.Equal(t, "1234", msg.Code)
	assert.Equal(t, 4, api.messageCalls)

	require.Len(t, attempts, 3)
	assert.Equal(t, 1, attempts[0].Number)
	assert.Nil(t, attempts[0].Err)
	assert.Equal(t, foxapi.MessageNotYet, attempts[0].Message.ErrorCode)
	assert.True(t, foxapi.IsTransportError(attempts[1].Err))
	assert.Equal(t, 3, attempts[2].Number)
}

func TestWaitForMessage_RequireCode(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){
		arrived("welcome to the service", ""),
		arrived("your code: 5678", "5678"),
	}}

	opts := fastOptions()
	opts.RequireCode = true

	msg, err := WaitForMessage(context.Background(), api, "tok", "pk1", opts)
	require.NoError(t, err)
	assert.Equal(t, "5678", msg.Code)
	assert.Equal(t, 2, api.messageCalls)
}

func TestWaitForMessage_WithoutRequireCodeAcceptsAnySMS(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){arrived("welcome", "")}}

	msg, err := WaitForMessage(context.Background(), api, "tok", "pk1", fastOptions())
	require.NoError(t, err)
	assert.False(t, msg.HasCode())
}

func TestWaitForMessage_Timeout(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){notYet}}

	opts := Options{Interval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond}
	_, err := WaitForMessage(context.Background(), api, "tok", "pk1", opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, api.messageCalls, 2)
}

func TestWaitForMessage_ContextCancelled(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){notYet}}

	ctx, cancel := context.WithCancel(context.Background())
	opts := Options{Interval: time.Hour, Timeout: time.Hour}
	opts.OnAttempt = func(Attempt) { cancel() }

	_, err := WaitForMessage(ctx, api, "tok", "pk1", opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestWaitForMessage_NotLoggedInStops(t *testing.T) {
	api := &fakeAPI{messages: []func() (*foxapi.Message, error){
		func() (*foxapi.Message, error) { return nil, foxapi.NewNotLoggedInError(foxapi.ActionGetMessage) },
	}}

	_, err := WaitForMessage(context.Background(), api, "", "pk1", fastOptions())
	assert.ErrorIs(t, err, foxapi.ErrNotLoggedIn)
	assert.Equal(t, 1, api.messageCalls)
}

func TestReceive_Success(t *testing.T) {
	api := &fakeAPI{
		lease:    okLease(),
		messages: []func() (*foxapi.Message, error){notYet, arrived("code:9999", "9999")},
	}

	var leased []string
	opts := fastOptions()
	opts.OnLease = func(l *foxapi.PhoneLease) { leased = append(leased, l.Pkey) }

	result, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok", ProjectID: "1001"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"pk1"}, leased)
	assert.Equal(t, "pk1", result.Lease.Pkey)
	assert.Equal(t, "9999", result.Message.Code)
	assert.False(t, result.Released)
	assert.Empty(t, api.released)
}

func TestReceive_TimeoutReleases(t *testing.T) {
	api := &fakeAPI{lease: okLease(), messages: []func() (*foxapi.Message, error){notYet}}

	opts := Options{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond, ReleaseOnTimeout: true}
	result, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok", ProjectID: "1001"}, opts)
	require.ErrorIs(t, err, ErrTimeout)
	require.NotNil(t, result)
	assert.True(t, result.Released)
	assert.Equal(t, []string{"pk1"}, api.released)
}

func TestReceive_CancelledStillReleases(t *testing.T) {
	api := &fakeAPI{lease: okLease(), messages: []func() (*foxapi.Message, error){notYet}}

	ctx, cancel := context.WithCancel(context.Background())
	opts := Options{Interval: time.Hour, Timeout: time.Hour, ReleaseOnTimeout: true}
	opts.OnAttempt = func(Attempt) { cancel() }

	result, err := Receive(ctx, api, foxapi.GetPhoneParams{Token: "tok", ProjectID: "1001"}, opts)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, result.Released)
}

func TestReceive_NoReleaseWhenDisabled(t *testing.T) {
	api := &fakeAPI{lease: okLease(), messages: []func() (*foxapi.Message, error){notYet}}

	opts := Options{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond}
	result, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok"}, opts)
	require.ErrorIs(t, err, ErrTimeout)
	assert.False(t, result.Released)
	assert.Empty(t, api.released)
}

func TestReceive_ReleaseRefused(t *testing.T) {
	api := &fakeAPI{
		lease:    okLease(),
		messages: []func() (*foxapi.Message, error){notYet},
		release:  &foxapi.Status{Success: false, Error: "-4", ErrorCode: foxapi.ReleaseAlreadyCoded},
	}

	opts := Options{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond, ReleaseOnTimeout: true}
	result, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok"}, opts)
	require.ErrorIs(t, err, ErrTimeout)
	assert.False(t, result.Released)
	assert.Len(t, api.released, 1)
}

func TestReceive_LeaseFailure(t *testing.T) {
	api := &fakeAPI{lease: &foxapi.PhoneLease{Status: foxapi.Status{Success: false, Error: "-8", ErrorCode: foxapi.PhoneInsufficientFunds}}}

	result, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok"}, fastOptions())
	assert.Nil(t, result)

	var srvErr *foxapi.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, foxapi.PhoneInsufficientFunds, srvErr.Code)
	assert.Zero(t, api.messageCalls)
}

func TestReceive_LeaseTransportError(t *testing.T) {
	api := &fakeAPI{leaseErr: foxapi.NewHTTPError(foxapi.ActionGetPhone, 500, "boom")}

	_, err := Receive(context.Background(), api, foxapi.GetPhoneParams{Token: "tok"}, fastOptions())
	assert.True(t, foxapi.IsTransportError(err))
}

func TestReceiveMany_PinsMobile(t *testing.T) {
	api := &fakeAPI{
		lease:    okLease(),
		messages: []func() (*foxapi.Message, error){arrived("code:1111", "1111")},
	}

	results, err := ReceiveMany(context.Background(), api, foxapi.GetPhoneParams{Token: "tok", ProjectID: "1001"}, 3, fastOptions())
	require.NoError(t, err)
	assert.Len(t, results, 3)

	require.Len(t, api.phoneCalls, 3)
	assert.Equal(t, "", api.phoneCalls[0].Mobile)
	assert.Equal(t, "13800138000", api.phoneCalls[1].Mobile)
	assert.Equal(t, "13800138000", api.phoneCalls[2].Mobile)
}

func TestReceiveMany_StopsOnFailure(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		lease: okLease(),
		messages: []func() (*foxapi.Message, error){
			arrived("code:1111", "1111"),
			notYet,
		},
	}

	opts := Options{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond, ReleaseOnTimeout: true}
	opts.OnAttempt = func(Attempt) { calls++ }

	results, err := ReceiveMany(context.Background(), api, foxapi.GetPhoneParams{Token: "tok"}, 3, opts)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "receive 2 of 3")
	assert.Len(t, results, 2)
	assert.Len(t, api.phoneCalls, 2)
	assert.Positive(t, calls)
}

func TestReceiveMany_InvalidCount(t *testing.T) {
	_, err := ReceiveMany(context.Background(), &fakeAPI{}, foxapi.GetPhoneParams{}, 0, fastOptions())
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 5*time.Second, opts.Interval)
	assert.Equal(t, 5*time.Minute, opts.Timeout)
	assert.True(t, opts.ReleaseOnTimeout)

	filled := Options{}.withDefaults()
	assert.Equal(t, DefaultInterval, filled.Interval)
	assert.Equal(t, DefaultTimeout, filled.Timeout)
	assert.False(t, filled.ReleaseOnTimeout)
}
