package bootstrap

import (
	"context"

	"hr-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit events into the shared zap tree so they land in
// the same stream as request logs, tagged with the request that caused them.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L().Named("bootstrap.audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bootstrap.audit")
	}
	return &ZapAuditLogger{logger: l}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.logger.Info("audit event",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
