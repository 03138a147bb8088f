package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/libris-api/internal/domain"
)

// isDomainError reports whether err is one of the caller-recoverable domain
// error kinds.
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict)
}

// wrapOpaque returns domain errors unchanged so their message reaches the
// client, and wraps everything else with msg.
func wrapOpaque(msg string, err error) error {
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// logOutcome logs expected domain outcomes at debug level and unexpected
// failures at error level.
func logOutcome(log *slog.Logger, msg string, err error, attrs ...any) {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	if isDomainError(err) {
		log.Debug(msg, args...)
		return
	}
	log.Error(msg, args...)
}
