package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/konta/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, caller, outcome and latency, and counts it in m (which may
// be nil).
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			code, level, msg := rpcOutcome(err)
			m.ObserveRPC(procedure, code)

			attrs := []any{
				"procedure", procedure,
				"code", code,
				"user_id", GetUserID(ctx), // empty before login
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				attrs = append(attrs, "error", msg)
			}
			slog.Log(ctx, level, "RPC completed", attrs...)
			return resp, err
		}
	}
}

// rpcOutcome reduces an RPC error to a metric label, a log level and a
// message. Client errors log at warn, everything else at error.
func rpcOutcome(err error) (string, slog.Level, string) {
	if err == nil {
		return "ok", slog.LevelInfo, ""
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return connect.CodeUnknown.String(), slog.LevelError, err.Error()
	}
	switch connectErr.Code() {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeUnavailable, connect.CodeDataLoss:
		return connectErr.Code().String(), slog.LevelError, connectErr.Message()
	default:
		return connectErr.Code().String(), slog.LevelWarn, connectErr.Message()
	}
}
