package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memorySettingsRepo struct {
	stored *Settings
}

func (r *memorySettingsRepo) Get(ctx context.Context) (*Settings, error) {
	if r.stored == nil {
		return nil, ErrNotFound
	}
	out := *r.stored
	return &out, nil
}

func (r *memorySettingsRepo) Upsert(ctx context.Context, s *Settings) error {
	now := time.Now()
	if r.stored == nil {
		s.CreatedAt = now
	} else {
		s.CreatedAt = r.stored.CreatedAt
	}
	s.UpdatedAt = now
	stored := *s
	r.stored = &stored
	return nil
}

func strptr(s string) *string { return &s }

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetReturnsBlankProfileWhenUnset(t *testing.T) {
	svc := newTestService(&memorySettingsRepo{})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, settings.BusinessName)
	require.False(t, settings.SMTPConfigured())
}

func TestUpdateMergesIntoStoredProfile(t *testing.T) {
	repo := &memorySettingsRepo{}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), UpdateSettingsRequest{
		BusinessName:  strptr("Acme Studio"),
		BusinessEmail: strptr("hello@acme.studio"),
		GSTNumber:     strptr("29ABCDE1234F1Z5"),
	})
	require.NoError(t, err)

	port := 587
	updated, err := svc.Update(context.Background(), UpdateSettingsRequest{
		EmailHost:        strptr("smtp.acme.studio"),
		EmailPort:        &port,
		EmailFromAddress: strptr("billing@acme.studio"),
	})
	require.NoError(t, err)

	require.Equal(t, "Acme Studio", updated.BusinessName)
	require.NotNil(t, updated.GSTNumber)
	require.Equal(t, "29ABCDE1234F1Z5", *updated.GSTNumber)
	require.True(t, updated.SMTPConfigured())
}
