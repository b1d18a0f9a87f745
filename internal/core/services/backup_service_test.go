package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidereni/studylog/internal/adapters/repository"
	"github.com/davidereni/studylog/internal/core/domain"
	"github.com/davidereni/studylog/internal/core/services"
)

func seedSession(t *testing.T, repo domain.SessionRepository, date, start, end string) *domain.Session {
	t.Helper()
	s, err := domain.NewSession(date, "", start, end, "seed", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestBackupService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	sessionRepo := repository.NewInMemorySessionRepository()
	badgeRepo := repository.NewInMemoryBadgeStateRepository()
	svc := services.NewBackupService(sessionRepo, badgeRepo)

	seedSession(t, sessionRepo, "2024-01-01", "09:00", "09:30")
	seedSession(t, sessionRepo, "2024-01-02", "20:00", "20:45")

	unlockedAt := time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)
	require.NoError(t, badgeRepo.Save(ctx, []domain.BadgeState{
		{BadgeID: "content-1", Unlocked: true, UnlockedAt: &unlockedAt},
	}))

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Sessions, 2)
	require.Len(t, exported.Badges, 1)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	// Restore into a fresh store and compare.
	freshSessions := repository.NewInMemorySessionRepository()
	freshBadges := repository.NewInMemoryBadgeStateRepository()
	restore := services.NewBackupService(freshSessions, freshBadges)

	require.NoError(t, restore.Import(ctx, raw))

	reExported, err := restore.Export(ctx)
	require.NoError(t, err)

	reRaw, err := json.Marshal(reExported)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(reRaw))
}

func TestBackupService_Export_EmptyStoreHasBothKeys(t *testing.T) {
	ctx := context.Background()

	svc := services.NewBackupService(
		repository.NewInMemorySessionRepository(),
		repository.NewInMemoryBadgeStateRepository(),
	)

	exported, err := svc.Export(ctx)
	require.NoError(t, err)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	// Both keys serialize as arrays even when empty.
	assert.JSONEq(t, `{"sessions":[],"badges":[]}`, string(raw))
}

func TestBackupService_Import_RejectsMalformedDocuments(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"Not JSON", `{{{`},
		{"Missing sessions key", `{"badges": []}`},
		{"Missing badges key", `{"sessions": []}`},
		{"Sessions not an array", `{"sessions": {}, "badges": []}`},
		{"Badges not an array", `{"sessions": [], "badges": "nope"}`},
		{"Session with non-positive duration", `{"sessions": [{"id":"s1","date":"2024-01-01","start_time":"10:00","end_time":"09:00","duration":-60}], "badges": []}`},
		{"Session with malformed date", `{"sessions": [{"id":"s1","date":"Jan 1","start_time":"09:00","end_time":"10:00","duration":60}], "badges": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionRepo := new(MockSessionRepo)
			badgeRepo := new(MockBadgeRepo)
			svc := services.NewBackupService(sessionRepo, badgeRepo)

			err := svc.Import(ctx, []byte(tt.raw))
			assert.ErrorIs(t, err, services.ErrInvalidBackup)

			// All-or-nothing: a rejected import never touches the store.
			sessionRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
			badgeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestBackupService_Import_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()

	sessionRepo := repository.NewInMemorySessionRepository()
	badgeRepo := repository.NewInMemoryBadgeStateRepository()
	svc := services.NewBackupService(sessionRepo, badgeRepo)

	stale := seedSession(t, sessionRepo, "2020-01-01", "08:00", "09:00")

	raw := `{
		"sessions": [{
			"id": "imported-1",
			"date": "2024-06-01",
			"time_slot": "morning",
			"start_time": "09:00",
			"end_time": "10:00",
			"duration": 60,
			"content": "restored",
			"notes": "",
			"version": 1,
			"created_at": "2024-06-01T10:00:00Z",
			"updated_at": "2024-06-01T10:00:00Z"
		}],
		"badges": []
	}`

	require.NoError(t, svc.Import(ctx, []byte(raw)))

	sessions, err := sessionRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "imported-1", sessions[0].ID)

	_, err = sessionRepo.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
