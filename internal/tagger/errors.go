package tagger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"marketTags/internal/subgraph"
)

// ErrUnknown marks failures that are neither configuration nor remote errors.
var ErrUnknown = errors.New("unknown error occurred")

// IsConfigurationError reports whether err carries a *subgraph.ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *subgraph.ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsRemoteError reports whether err carries a *subgraph.RemoteError.
func IsRemoteError(err error) bool {
	var remoteErr *subgraph.RemoteError
	return errors.As(err, &remoteErr)
}

func wrapFailure(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.Error(err))

	var remoteErr *subgraph.RemoteError
	if errors.As(err, &remoteErr) && len(remoteErr.Messages) > 0 {
		fields = append(fields, zap.Strings("messages", remoteErr.Messages))
	}
	logger.Error(op+" failed", fields...)

	switch {
	case IsConfigurationError(err), IsRemoteError(err),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrUnknown, err)
	}
}
