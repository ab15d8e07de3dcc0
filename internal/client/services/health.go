package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/client"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type HealthAPI interface {
	Health(ctx context.Context, path string) (json.RawMessage, error)
}

type healthProbe struct {
	name     string
	endpoint string
}

var healthProbes = []healthProbe{
	{"Main Service", "/health"},
	{"Content Service", "/content/health"},
	{"Assessment Service", "/assessment/health"},
	{"Chat Service", "/chat/health"},
	{"Notification Service", "/notify/health"},
	{"Auth Service", "/auth/health"},
}

type HealthService struct {
	api HealthAPI
}

func NewHealthService(api HealthAPI) *HealthService {
	return &HealthService{api: api}
}

// Check probes every backend service concurrently. Probe failures are part of
// the result, so Check itself only fails if ctx is done.
func (s *HealthService) Check(ctx context.Context) ([]models.ServiceStatus, error) {
	out := make([]models.ServiceStatus, len(healthProbes))

	var g errgroup.Group
	for i, p := range healthProbes {
		g.Go(func() error {
			out[i] = s.probe(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping reports whether the main service answers.
func (s *HealthService) Ping(ctx context.Context) error {
	_, err := s.api.Health(ctx, healthProbes[0].endpoint)
	return err
}

func (s *HealthService) probe(ctx context.Context, p healthProbe) models.ServiceStatus {
	st := models.ServiceStatus{Name: p.name, Endpoint: p.endpoint}

	data, err := s.api.Health(ctx, p.endpoint)
	if err != nil {
		st.Error = err.Error()
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			st.StatusCode = apiErr.StatusCode
		}
		return st
	}

	st.Online = true
	st.Data = data
	return st
}
