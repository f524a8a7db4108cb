// Package memory holds in-process implementations of the storage
// interfaces, used when no database is configured and in tests.
package memory

import (
	"sync"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/google/uuid"
)

// MissionRepo keeps missions in a map.
type MissionRepo struct {
	missions map[uuid.UUID]domain.Mission
	sync.RWMutex
}

// NewMissionRepo creates an empty MissionRepo.
func NewMissionRepo() *MissionRepo {
	return &MissionRepo{missions: make(map[uuid.UUID]domain.Mission)}
}

// Save inserts or replaces a mission. The stored copy is detached from the
// caller's value.
func (r *MissionRepo) Save(mission *domain.Mission) error {
	r.Lock()
	defer r.Unlock()
	r.missions[mission.ID] = clone(mission)
	return nil
}

// ByID returns a copy of the stored mission or domain.ErrNotFound.
func (r *MissionRepo) ByID(id uuid.UUID) (*domain.Mission, error) {
	r.RLock()
	defer r.RUnlock()
	m, ok := r.missions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(&m)
	return &out, nil
}

func clone(m *domain.Mission) domain.Mission {
	out := *m
	out.Path = append(out.Path[:0:0], m.Path...)
	out.Commands = append(out.Commands[:0:0], m.Commands...)
	return out
}
