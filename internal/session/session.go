// Package session holds the identity of the currently signed-in donor.
// Authentication itself happens server-side; this store only keeps the
// already-authenticated {id, name} record under a well-known key, the way
// the browser's local storage held it before.
package session

import (
	"context"
	"sync"

	"hoperaise/internal/core"
)

// CurrentDonorKey is the well-known key the donor record is stored under.
const CurrentDonorKey = "currentDonor"

// Store reads and writes the signed-in donor. Current returns (nil, nil)
// when nobody is signed in.
type Store interface {
	Current(ctx context.Context) (*core.Donor, error)
	Save(ctx context.Context, donor core.Donor) error
	Clear(ctx context.Context) error
}

// Memory is an in-process Store for tests and the demo backend.
type Memory struct {
	mu    sync.Mutex
	donor *core.Donor
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Current(_ context.Context) (*core.Donor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.donor == nil {
		return nil, nil
	}
	d := *m.donor
	return &d, nil
}

func (m *Memory) Save(_ context.Context, donor core.Donor) error {
	if err := donor.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.donor = &donor
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.donor = nil
	return nil
}
