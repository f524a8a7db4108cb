package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMissions struct {
	submitted []domain.MissionConfig
	stored    map[uuid.UUID]*domain.Mission
	stops     int
	submitErr error
	stopErr   error
}

func (s *stubMissions) Submit(_ context.Context, config domain.MissionConfig) (*domain.Mission, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	m, err := domain.NewMission(config)
	if err != nil {
		return nil, err
	}
	if len(config.Grid) == 1 && len(config.Grid[0]) == 1 && config.Grid[0][0] == maze.Blocked {
		_ = m.Transition(domain.StatusFailed, errors.New("goal is unreachable from start"))
	}
	s.submitted = append(s.submitted, config)
	s.stored[m.ID] = m
	return m, nil
}

func (s *stubMissions) ByID(id uuid.UUID) (*domain.Mission, error) {
	if m, ok := s.stored[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubMissions) Stop(context.Context) error {
	s.stops++
	return s.stopErr
}

func newMissionRouter(missions *stubMissions) *gin.Engine {
	router := gin.New()
	NewMissionController(missions).RegisterProtected(router.Group("/api/v1"))
	return router
}

func TestSubmitMission(t *testing.T) {
	t.Run("grid mission is accepted", func(t *testing.T) {
		missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
		router := newMissionRouter(missions)

		rec := doJSON(router, http.MethodPost, "/api/v1/missions", `{"mode":"grid","grid":[[0,0]],"start":{"row":0,"col":0},"goal":{"row":0,"col":1}}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var got MissionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.StatusQueued, got.Status)
		require.Len(t, missions.submitted, 1)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, missions.submitted[0].Goal)
	})

	t.Run("direct mission carries points", func(t *testing.T) {
		missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
		router := newMissionRouter(missions)

		rec := doJSON(router, http.MethodPost, "/api/v1/missions", `{"mode":"direct","from":{"x":1,"y":2},"to":{"x":3,"y":4}}`)
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Len(t, missions.submitted, 1)
		assert.Equal(t, 3.0, missions.submitted[0].To.X)
		assert.Equal(t, 4.0, missions.submitted[0].To.Y)
	})

	t.Run("failed plan", func(t *testing.T) {
		missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
		router := newMissionRouter(missions)

		rec := doJSON(router, http.MethodPost, "/api/v1/missions", `{"mode":"grid","grid":[[1]]}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got MissionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.StatusFailed, got.Status)
		assert.NotEmpty(t, got.Error)
	})

	t.Run("bad requests", func(t *testing.T) {
		missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
		router := newMissionRouter(missions)

		for _, body := range []string{
			`{"mode":"teleport"}`,
			`{"grid":[[0]]}`,
			`{"mode":"grid"}`,
			`{"mode":"grid","grid":[[0,0],[0]]}`,
		} {
			rec := doJSON(router, http.MethodPost, "/api/v1/missions", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		assert.Empty(t, missions.submitted)
	})

	t.Run("service failure", func(t *testing.T) {
		missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}, submitErr: errors.New("queue down")}
		router := newMissionRouter(missions)

		rec := doJSON(router, http.MethodPost, "/api/v1/missions", `{"mode":"direct"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMissionByID(t *testing.T) {
	missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
	m, err := domain.NewMission(domain.MissionConfig{Mode: domain.ModeDirect})
	require.NoError(t, err)
	missions.stored[m.ID] = m
	router := newMissionRouter(missions)

	t.Run("found", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/missions/"+m.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got MissionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, m.ID, got.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/missions/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/missions/42", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStopMission(t *testing.T) {
	missions := &stubMissions{stored: map[uuid.UUID]*domain.Mission{}}
	router := newMissionRouter(missions)

	rec := doJSON(router, http.MethodPost, "/api/v1/missions/stop", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, missions.stops)

	missions.stopErr = errors.New("serial port closed")
	rec = doJSON(router, http.MethodPost, "/api/v1/missions/stop", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
