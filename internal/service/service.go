package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/devffery/task-two/internal/password"
	"github.com/devffery/task-two/internal/repository"
	"github.com/devffery/task-two/internal/token"
)

// IdentityService implements registration, login, user lookup, and
// organization management on top of the identity store.
type IdentityService struct {
	users  repository.UserRepository
	orgs   repository.OrgRepository
	hasher *password.Hasher
	tokens *token.Issuer
	logger *zap.Logger
	tracer trace.Tracer
}

// NewIdentityService wires dependencies.
func NewIdentityService(users repository.UserRepository, orgs repository.OrgRepository, hasher *password.Hasher, tokens *token.Issuer, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		users:  users,
		orgs:   orgs,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		tracer: otel.Tracer("github.com/devffery/task-two/internal/service"),
	}
}

func (s *IdentityService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *IdentityService) audit(event string, attrs ...any) {
	logger := s.log()
	if logger == nil {
		return
	}
	fields := make([]zap.Field, 0, len(attrs)/2+2)
	fields = append(fields, zap.String("event", event), zap.Time("timestamp", time.Now().UTC()))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	logger.Info("audit", fields...)
}

func (s *IdentityService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
