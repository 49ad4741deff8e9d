package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/securemessenger/internal/auth/domain"
	"github.com/allisson/securemessenger/internal/metrics"
	userDomain "github.com/allisson/securemessenger/internal/user/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "auth", operation, start, err)
}

// Login records metrics for login attempts.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, input)
	s.record(ctx, "session_login", start, err)
	return output, err
}

// Logout records metrics for logouts.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, tokenHash string) error {
	start := time.Now()
	err := s.next.Logout(ctx, tokenHash)
	s.record(ctx, "session_logout", start, err)
	return err
}

// Authenticate records metrics for bearer token checks.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	start := time.Now()
	user, err := s.next.Authenticate(ctx, tokenHash)
	s.record(ctx, "session_authenticate", start, err)
	return user, err
}

// CleanupExpired records metrics for session cleanup.
func (s *sessionUseCaseWithMetrics) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := s.next.CleanupExpired(ctx, days, dryRun)
	s.record(ctx, "session_cleanup", start, err)
	return count, err
}
