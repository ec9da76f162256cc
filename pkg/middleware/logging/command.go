package loggingmw

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

type HandlerFunc func(ctx context.Context, line string) error

type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// CommandLogger puts a per-command logger into ctx and logs how each command
// ended. levelOf picks the level for a failed command; nil means Error.
func CommandLogger(base *slog.Logger, levelOf func(error) slog.Level) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, line string) error {
			l := base.With(
				"command_id", uuid.NewString(),
				"command", commandName(line),
			)
			ctx = logging.IntoContext(ctx, l)

			start := time.Now()
			err := next(ctx, line)
			dur := time.Since(start)

			if err == nil {
				l.Info("command completed", "duration_ms", dur.Milliseconds())
				return nil
			}

			lvl := slog.LevelError
			if levelOf != nil {
				lvl = levelOf(err)
			}
			l.Log(ctx, lvl, "command completed", "duration_ms", dur.Milliseconds(), "error", err.Error())
			return err
		}
	}
}

func commandName(line string) string {
	for i, r := range line {
		if r == ' ' || r == '\t' {
			return line[:i]
		}
	}
	return line
}
