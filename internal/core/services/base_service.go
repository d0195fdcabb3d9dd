package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CompanyAuthorizer portssvc.CompanyAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected failure (validation, conflicts) with the error attached
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks that the user's role in the company grants capability.
// Without an authorizer every request is denied.
func (s *BaseService) Authorize(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	if s.CompanyAuthorizer == nil {
		s.LogError(ctx, errNoAuthorizer, "Authorization requested without a company authorizer",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("capability", string(capability)))
		return errNoAuthorizer
	}
	return s.CompanyAuthorizer.AuthorizeCapability(ctx, userID, companyID, capability)
}
