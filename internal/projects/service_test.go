package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryProjectRepo struct {
	projects map[uuid.UUID]*Project
}

func newMemoryProjectRepo() *memoryProjectRepo {
	return &memoryProjectRepo{projects: make(map[uuid.UUID]*Project)}
}

func (r *memoryProjectRepo) Create(ctx context.Context, p *Project) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	r.projects[p.ID] = &stored
	return nil
}

func (r *memoryProjectRepo) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *memoryProjectRepo) List(ctx context.Context, req ListProjectsRequest) ([]Project, error) {
	var out []Project
	for _, p := range r.projects {
		if req.Status != "" && p.Status != req.Status {
			continue
		}
		if req.ClientID != nil && p.ClientID != *req.ClientID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryProjectRepo) Update(ctx context.Context, p *Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	stored := *p
	r.projects[p.ID] = &stored
	return nil
}

func (r *memoryProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func newTestService() (*Service, *memoryProjectRepo) {
	repo := newMemoryProjectRepo()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateProjectDefaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateProjectRequest{
		Name:     "Website Redesign",
		ClientID: uuid.New(),
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, p.Status)
	require.Equal(t, "USD", p.Currency)
}

func TestListProjectsFiltersByClient(t *testing.T) {
	svc, _ := newTestService()
	clientA := uuid.New()
	clientB := uuid.New()

	_, err := svc.Create(context.Background(), CreateProjectRequest{Name: "A", ClientID: clientA})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateProjectRequest{Name: "B", ClientID: clientB})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), ListProjectsRequest{ClientID: &clientA})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "A", list[0].Name)
}

func TestUpdateProjectStatus(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateProjectRequest{
		Name:     "Website Redesign",
		ClientID: uuid.New(),
	})
	require.NoError(t, err)

	status := StatusCompleted
	updated, err := svc.Update(context.Background(), p.ID, UpdateProjectRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, updated.Status)
	require.Equal(t, "Website Redesign", updated.Name)
}
