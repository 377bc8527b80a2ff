package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/guestlist/pkg/api"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func callWith(t *testing.T, err error) map[string]any {
	t.Helper()
	buf := captureLogs(t)

	req := connect.NewRequest(&api.ListGuestsRequest{})
	req.Header().Set(RequestIDHeader, "req-42")

	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&api.ListGuestsResponse{}), nil
	}
	_, got := LoggingInterceptor()(next)(context.Background(), req)
	assert.Equal(t, err, got)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLoggingInterceptor(t *testing.T) {
	t.Run("served", func(t *testing.T) {
		line := callWith(t, nil)
		assert.Equal(t, "INFO", line["level"])
		assert.Equal(t, "Guest call served", line["msg"])
		assert.Equal(t, "req-42", line["request_id"])
		assert.NotContains(t, line, "error")
	})

	t.Run("rejected", func(t *testing.T) {
		line := callWith(t, connect.NewError(connect.CodeInvalidArgument, errors.New("id required")))
		assert.Equal(t, "WARN", line["level"])
		assert.Equal(t, "Guest call rejected", line["msg"])
		assert.Equal(t, "invalid_argument", line["code"])
		assert.Equal(t, "id required", line["error"])
	})

	t.Run("failed", func(t *testing.T) {
		line := callWith(t, errors.New("disk on fire"))
		assert.Equal(t, "ERROR", line["level"])
		assert.Equal(t, "Guest call failed", line["msg"])
		assert.Equal(t, "disk on fire", line["error"])
	})
}
