package usecases

import (
	"context"
	"fmt"

	"dutywire/internal/domain/overtime"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/id"
)

// saveAudit assigns the audit event its public ID and persists it. Callers
// run it inside the same transaction as the write it records.
func saveAudit(ctx context.Context, repo overtime.AuditEventRepository, audit *overtime.AuditEvent) error {
	sid, err := id.NewAuditEventID()
	if err != nil {
		return fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	if err := audit.SetSID(sid); err != nil {
		return fmt.Errorf("failed to assign audit event ID: %w", err)
	}
	if err := repo.Save(ctx, audit); err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

// asPersistence passes taxonomy errors through untouched and folds everything
// else into a persistence failure with the given message.
func asPersistence(err error, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.NewPersistenceFailureError(message)
}
