package receiver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/foxsms/internal/foxapi"
	"github.com/muurk/foxsms/internal/logging"
)

const (
	// DefaultInterval is the delay between getMessage polls.
	DefaultInterval = 5 * time.Second

	// DefaultTimeout is how long to wait for an SMS before giving up.
	DefaultTimeout = 5 * time.Minute

	// releaseTimeout bounds the release call made after a wait ends badly.
	releaseTimeout = 10 * time.Second
)

// ErrTimeout is returned when no (matching) message arrived in time.
var ErrTimeout = errors.New("timed out waiting for message")

// API is the subset of the service client the receiver drives.
// *foxapi.Client satisfies it.
type API interface {
	GetPhone(ctx context.Context, p foxapi.GetPhoneParams) (*foxapi.PhoneLease, error)
	GetMessage(ctx context.Context, p foxapi.GetMessageParams) (*foxapi.Message, error)
	ReleasePhone(ctx context.Context, p foxapi.LeaseParams) (*foxapi.Status, error)
}

// Attempt describes one unsuccessful poll.
type Attempt struct {
	Number  int
	Elapsed time.Duration
	Message *foxapi.Message // nil when Err is set
	Err     error           // transport error, nil for logical failures
}

// Options controls polling. Zero values select the defaults, except
// ReleaseOnTimeout which is only applied through DefaultOptions.
type Options struct {
	Interval         time.Duration
	Timeout          time.Duration
	RequireCode      bool // keep polling until the SMS carries a recognisable code
	ReleaseOnTimeout bool // release the lease when waiting fails
	OnLease          func(*foxapi.PhoneLease)
	OnAttempt        func(Attempt)
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Interval:         DefaultInterval,
		Timeout:          DefaultTimeout,
		ReleaseOnTimeout: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Result is the outcome of one Receive.
type Result struct {
	Lease    *foxapi.PhoneLease
	Message  *foxapi.Message
	Released bool // the lease was released after a failed wait
}

// WaitForMessage polls getMessage for pkey until a message arrives, the
// timeout elapses or ctx ends. Logical failures and transport errors are
// reported to OnAttempt and polling continues; a missing token stops it.
func WaitForMessage(ctx context.Context, api API, token, pkey string, opts Options) (*foxapi.Message, error) {
	opts = opts.withDefaults()
	start := time.Now()

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	for n := 1; ; n++ {
		msg, err := api.GetMessage(waitCtx, foxapi.GetMessageParams{Token: token, Pkey: pkey})
		switch {
		case err != nil && foxapi.IsNotLoggedIn(err):
			return nil, err
		case err == nil && msg.Success && (!opts.RequireCode || msg.HasCode()):
			logging.Debug("Message received",
				zap.String("pkey", pkey),
				zap.Int("attempts", n),
				zap.Duration("elapsed", time.Since(start)),
			)
			return msg, nil
		}

		attempt := Attempt{Number: n, Elapsed: time.Since(start), Message: msg, Err: err}
		logAttempt(pkey, attempt)
		if opts.OnAttempt != nil {
			opts.OnAttempt(attempt)
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w after %s (%d attempts)", ErrTimeout, opts.Timeout, n)
		case <-timer.C:
		}
	}
}

// Receive leases a number, waits for its message and, when the wait fails
// and ReleaseOnTimeout is set, releases the lease.
//
// A logical getPhone failure is returned as a *foxapi.ServerError.
func Receive(ctx context.Context, api API, params foxapi.GetPhoneParams, opts Options) (*Result, error) {
	lease, err := api.GetPhone(ctx, params)
	if err != nil {
		return nil, err
	}
	if !lease.Success {
		return nil, lease.Err()
	}

	logging.Info("Number leased",
		zap.String("pkey", lease.Pkey),
		zap.String("mobile", lease.Mobile),
		zap.String("country", lease.CountryCode),
	)

	if opts.OnLease != nil {
		opts.OnLease(lease)
	}

	result := &Result{Lease: lease}
	msg, err := WaitForMessage(ctx, api, params.Token, lease.Pkey, opts)
	if err == nil {
		result.Message = msg
		return result, nil
	}

	if opts.ReleaseOnTimeout && !foxapi.IsNotLoggedIn(err) {
		result.Released = release(api, params.Token, lease.Pkey)
	}
	return result, err
}

// ReceiveMany runs Receive count times. Leases after the first are pinned to
// the first lease's mobile number. It stops at the first failure and returns
// the results gathered so far.
func ReceiveMany(ctx context.Context, api API, params foxapi.GetPhoneParams, count int, opts Options) ([]*Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	results := make([]*Result, 0, count)
	for i := 0; i < count; i++ {
		result, err := Receive(ctx, api, params, opts)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, fmt.Errorf("receive %d of %d: %w", i+1, count, err)
		}
		if i == 0 && params.Mobile == "" {
			params.Mobile = result.Lease.Mobile
		}
	}
	return results, nil
}

func release(api API, token, pkey string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	status, err := api.ReleasePhone(ctx, foxapi.LeaseParams{Token: token, Pkey: pkey})
	if err != nil {
		logging.Warn("Failed to release number", zap.String("pkey", pkey), zap.Error(err))
		return false
	}
	if !status.Success {
		logging.Warn("Service refused release",
			zap.String("pkey", pkey),
			zap.String("error", status.Error),
			zap.Int("code", status.ErrorCode),
		)
		return false
	}
	logging.Info("Number released", zap.String("pkey", pkey))
	return true
}

func logAttempt(pkey string, a Attempt) {
	fields := []zap.Field{
		zap.String("pkey", pkey),
		zap.Int("attempt", a.Number),
		zap.Duration("elapsed", a.Elapsed),
	}
	switch {
	case a.Err != nil:
		fields = append(fields, zap.Error(a.Err))
	case a.Message != nil && a.Message.Success:
		fields = append(fields, zap.String("reason", "no code in message"))
	case a.Message != nil:
		fields = append(fields, zap.String("error", a.Message.Error), zap.Int("code", a.Message.ErrorCode))
	}
	logging.Debug("Message not ready", fields...)
}
