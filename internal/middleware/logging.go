package middleware

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"connectrpc.com/connect"
)

// RequestIDHeader carries the per-request id set by the HTTP layer.
const RequestIDHeader = "X-Request-ID"

// LoggingInterceptor logs one line per guest list call: the method, the
// request id the router assigned, the peer and how long the call took.
// Connect errors are client-visible outcomes and log at warn; anything else
// is a server fault and logs at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("method", path.Base(req.Spec().Procedure)),
				slog.String("request_id", req.Header().Get(RequestIDHeader)),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}

			level, msg := slog.LevelInfo, "Guest call served"
			var connectErr *connect.Error
			switch {
			case err == nil:
			case errors.As(err, &connectErr):
				level, msg = slog.LevelWarn, "Guest call rejected"
				attrs = append(attrs,
					slog.String("code", connectErr.Code().String()),
					slog.String("error", connectErr.Message()),
				)
			default:
				level, msg = slog.LevelError, "Guest call failed"
				attrs = append(attrs, slog.Any("error", err))
			}

			slog.LogAttrs(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
