package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/middleware"
	"github.com/SscSPs/shopledger/internal/platform/observability"
	"github.com/SscSPs/shopledger/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LedgerPolicy holds the two allocation/refund bounds an operator may relax.
type LedgerPolicy struct {
	// StrictAllocation rejects a payment whose allocations sum above its amount.
	StrictAllocation bool
	// StrictRefund bounds a refund by what is left after prior refunds rather
	// than by the original payment amount.
	StrictRefund bool
}

// DefaultLedgerPolicy enables both bounds.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{StrictAllocation: true, StrictRefund: true}
}

// BaseService provides common functionality for all services
type BaseService struct {
	now             func() time.Time
	newID           func() string
	metrics         *observability.Metrics
	policy          LedgerPolicy
	agingBoundaries []int
}

// ServiceOption configures the shared parts of every service.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(b *BaseService) { b.now = now }
}

// WithIDGenerator overrides the UUIDv7 generator.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(b *BaseService) { b.newID = newID }
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *observability.Metrics) ServiceOption {
	return func(b *BaseService) { b.metrics = m }
}

// WithLedgerPolicy sets the allocation and refund bounds.
func WithLedgerPolicy(p LedgerPolicy) ServiceOption {
	return func(b *BaseService) { b.policy = p }
}

// WithAgingBoundaries sets the default aging windows.
func WithAgingBoundaries(boundaries []int) ServiceOption {
	return func(b *BaseService) { b.agingBoundaries = boundaries }
}

func newBaseService(opts ...ServiceOption) BaseService {
	b := BaseService{
		now: func() time.Time {
			// Postgres keeps microseconds; truncate so values round-trip exactly.
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
		policy:          DefaultLedgerPolicy(),
		agingBoundaries: accounting.DefaultAgingBoundaries,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a rejected request
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// validate shares gin's "binding" tags so requests built outside HTTP (CLI, tests)
// are checked by the same rules.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// validateRequest runs struct validation and folds failures into apperrors.ErrValidation.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
