//go:build !windows

package action

import (
	"context"
	"log/slog"

	"github.com/soocke/gesture-scroll/domain/gesture"
)

// NativeSink is only implemented on Windows.
type NativeSink struct {
	logger *slog.Logger
}

func NewNativeSink(logger *slog.Logger) *NativeSink { return &NativeSink{logger: logger} }

func (s *NativeSink) Dispatch(ctx context.Context, cmd gesture.ScrollCommand) error {
	return ErrUnsupportedPlatform
}
