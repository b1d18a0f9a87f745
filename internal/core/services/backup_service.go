package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/davidereni/studylog/internal/core/domain"
)

var (
	ErrInvalidBackup = errors.New("invalid backup document (expected sessions and badges arrays)")
)

// BackupService serializes the whole store as a single two-key JSON
// document and restores it with all-or-nothing semantics.
type BackupService struct {
	sessionRepo domain.SessionRepository
	badgeRepo   domain.BadgeStateRepository
}

func NewBackupService(sessionRepo domain.SessionRepository, badgeRepo domain.BadgeStateRepository) *BackupService {
	return &BackupService{
		sessionRepo: sessionRepo,
		badgeRepo:   badgeRepo,
	}
}

func (s *BackupService) Export(ctx context.Context) (*domain.Backup, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	if sessions == nil {
		sessions = []*domain.Session{}
	}
	if badges == nil {
		badges = []domain.BadgeState{}
	}

	return &domain.Backup{Sessions: sessions, Badges: badges}, nil
}

// Import validates the raw document before touching the store: both keys
// must be present and array-typed, and every session must satisfy the data
// model invariants. Any failure rejects the whole import.
func (s *BackupService) Import(ctx context.Context, raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ErrInvalidBackup
	}

	rawSessions, ok := doc["sessions"]
	if !ok || !isJSONArray(rawSessions) {
		return ErrInvalidBackup
	}
	rawBadges, ok := doc["badges"]
	if !ok || !isJSONArray(rawBadges) {
		return ErrInvalidBackup
	}

	var backup domain.Backup
	if err := json.Unmarshal(rawSessions, &backup.Sessions); err != nil {
		return ErrInvalidBackup
	}
	if err := json.Unmarshal(rawBadges, &backup.Badges); err != nil {
		return ErrInvalidBackup
	}

	for _, session := range backup.Sessions {
		if session == nil || session.ID == "" || session.Duration <= 0 {
			return ErrInvalidBackup
		}
		if _, err := domain.NewSession(session.Date, session.TimeSlot, session.StartTime, session.EndTime, session.Content, session.Notes); err != nil {
			return ErrInvalidBackup
		}
	}

	if err := s.sessionRepo.ReplaceAll(ctx, backup.Sessions); err != nil {
		return err
	}

	return s.badgeRepo.Save(ctx, backup.Badges)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
