// Package settings manages versioned admin settings documents. Every update
// or rollback appends a new immutable version; the history is never rewritten
// in place. Each mutation also writes an audit entry, best-effort: a failed
// audit write is logged but never rolls back the settings change.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/mongodb"
)

// ErrInvalidPayload means the submitted settings document is not a JSON
// object. Nothing is persisted in that case.
var ErrInvalidPayload = errors.New("settings payload must be a JSON object")

const auditTimeout = 5 * time.Second

// Service exposes the settings operations to the HTTP layer.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a settings service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Current returns the latest version of a category.
func (s *Service) Current(ctx context.Context, category string) (models.SettingsVersion, error) {
	return s.repo.LatestSettings(ctx, category)
}

// History returns every version of a category, oldest first.
func (s *Service) History(ctx context.Context, category string) ([]models.SettingsVersion, error) {
	return s.repo.SettingsHistory(ctx, category)
}

// Update validates the payload and appends it as the next version. Invalid
// JSON is rejected before anything touches the repository.
func (s *Service) Update(ctx context.Context, category string, payload json.RawMessage, userID string) (models.SettingsVersion, error) {
	if err := validatePayload(payload); err != nil {
		return models.SettingsVersion{}, err
	}

	next, err := s.nextVersion(ctx, category)
	if err != nil {
		return models.SettingsVersion{}, err
	}

	version := models.SettingsVersion{
		Category:  category,
		Version:   next,
		Payload:   payload,
		UpdatedBy: userID,
		CreatedAt: s.now(),
	}
	if err := s.repo.InsertSettingsVersion(ctx, version); err != nil {
		s.audit(userID, "settings.update", category, "failure", nil)
		return models.SettingsVersion{}, err
	}

	s.audit(userID, "settings.update", category, "success", map[string]string{
		"version": fmt.Sprint(next),
	})
	return version, nil
}

// Rollback re-applies an old version's payload as a brand new version. The
// old version's own record is untouched.
func (s *Service) Rollback(ctx context.Context, category string, toVersion int, userID string) (models.SettingsVersion, error) {
	old, err := s.repo.SettingsVersion(ctx, category, toVersion)
	if err != nil {
		return models.SettingsVersion{}, err
	}

	next, err := s.nextVersion(ctx, category)
	if err != nil {
		return models.SettingsVersion{}, err
	}

	version := models.SettingsVersion{
		Category:  category,
		Version:   next,
		Payload:   old.Payload,
		UpdatedBy: userID,
		CreatedAt: s.now(),
	}
	if err := s.repo.InsertSettingsVersion(ctx, version); err != nil {
		s.audit(userID, "settings.rollback", category, "failure", nil)
		return models.SettingsVersion{}, err
	}

	s.audit(userID, "settings.rollback", category, "success", map[string]string{
		"from_version": fmt.Sprint(toVersion),
		"new_version":  fmt.Sprint(next),
	})
	return version, nil
}

func (s *Service) nextVersion(ctx context.Context, category string) (int, error) {
	latest, err := s.repo.LatestSettings(ctx, category)
	if errors.Is(err, mongodb.ErrNoVersions) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

// audit writes the log entry fire-and-forget on its own context so a slow or
// failing audit store cannot stall or undo the primary mutation. Known
// inconsistency risk: a crash between the two writes loses the audit entry.
func (s *Service) audit(userID, action, category, outcome string, metadata map[string]string) {
	entry := models.AuditEntry{
		Timestamp:  s.now(),
		UserID:     userID,
		Action:     action,
		Resource:   "settings",
		ResourceID: category,
		Outcome:    outcome,
		Metadata:   metadata,
		Severity:   models.SeverityLow,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := s.repo.AppendAudit(ctx, entry); err != nil {
			s.logger.Error("audit log write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

func validatePayload(payload json.RawMessage) error {
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if decoded == nil {
		return ErrInvalidPayload
	}
	return nil
}
