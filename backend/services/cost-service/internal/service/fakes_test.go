package service

import (
	"context"
	"sort"
	"sync"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

func f(v float64) *float64 { return &v }

func s(v string) *string { return &v }

func et(v models.EnergyType) *models.EnergyType { return &v }

type fakeRepo struct {
	mu      sync.Mutex
	records map[string]models.CostRecord
	err     error
	updates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]models.CostRecord)}
}

func (r *fakeRepo) Create(_ context.Context, rec *models.CostRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records[rec.ID] = *rec.Clone()
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (*models.CostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return rec.Clone(), nil
}

func (r *fakeRepo) Update(_ context.Context, rec *models.CostRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.records[rec.ID]; !ok {
		return apperrors.ErrRecordNotFound
	}
	r.records[rec.ID] = *rec.Clone()
	r.updates++
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (*models.CostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	delete(r.records, id)
	return &rec, nil
}

func (r *fakeRepo) List(_ context.Context, filter models.CostFilter) ([]models.CostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.CostRecord
	for _, rec := range r.records {
		switch {
		case filter.UserID != "" && rec.UserID != filter.UserID:
			continue
		case filter.EnergyType != "" && rec.EnergyType != filter.EnergyType:
			continue
		case filter.FuelType != "" && rec.FuelType != filter.FuelType:
			continue
		case !filter.From.IsZero() && rec.Date.Before(filter.From):
			continue
		case !filter.Before.IsZero() && !rec.Date.Before(filter.Before):
			continue
		case !filter.Through.IsZero() && rec.Date.After(filter.Through):
			continue
		}
		out = append(out, *rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type fakeDevices struct {
	watts map[string]float64
	err   error
	calls int
}

func (d *fakeDevices) Wattage(_ context.Context, deviceID string) (float64, error) {
	d.calls++
	if d.err != nil {
		return 0, d.err
	}
	w, ok := d.watts[deviceID]
	if !ok {
		return 0, apperrors.ErrDeviceNotFound
	}
	return w, nil
}

type fakePublisher struct {
	events []models.CostEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event models.CostEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) kinds() []string {
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
