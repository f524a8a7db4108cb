package navigation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newPlanningRouter(t *testing.T) *gin.Engine {
	t.Helper()
	pc, err := NewPlanningController(nav.DefaultConfig())
	require.NoError(t, err)

	router := gin.New()
	pc.RegisterPublic(router.Group("/api/v1"))
	return router
}

func doJSON(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFindPathEndpoint(t *testing.T) {
	router := newPlanningRouter(t)

	t.Run("reference grid", func(t *testing.T) {
		body := `{
			"grid": [[0,0,1,0,0],[0,1,0,0,1],[0,0,0,1,0],[1,1,0,0,0],[0,0,0,1,0]],
			"start": {"row":0,"col":0},
			"goal": {"row":4,"col":4}
		}`
		rec := doJSON(router, http.MethodPost, "/api/v1/paths", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var got PathResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		want := maze.Path{
			{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
			{Row: 3, Col: 2}, {Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 4},
		}
		assert.True(t, got.Found)
		if diff := cmp.Diff(want, got.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unreachable goal", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/paths", `{"grid":[[0,1,0]],"start":{"row":0,"col":0},"goal":{"row":0,"col":2}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"path":[],"found":false}`, rec.Body.String())
	})

	t.Run("ragged grid", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/paths", `{"grid":[[0,0],[0]],"start":{"row":0,"col":0},"goal":{"row":1,"col":0}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("absent grid", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/paths", `{"start":{"row":0,"col":0},"goal":{"row":1,"col":0}}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/paths", `{"grid":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCommandsEndpoint(t *testing.T) {
	router := newPlanningRouter(t)

	t.Run("south then east", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/commands", `{"path":[{"row":0,"col":0},{"row":1,"col":0},{"row":1,"col":1}]}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got CommandsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		kinds := make([]nav.Kind, 0, len(got.Commands))
		for _, c := range got.Commands {
			kinds = append(kinds, c.Kind)
		}
		assert.Equal(t, []nav.Kind{nav.Forward, nav.TurnRight, nav.Forward}, kinds)

		cfg := nav.DefaultConfig()
		assert.Equal(t, (2*cfg.MoveTime + cfg.TurnTime).Milliseconds(), got.TotalDurationMs)
	})

	t.Run("non-adjacent path returns partial commands", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/commands", `{"path":[{"row":0,"col":0},{"row":1,"col":0},{"row":3,"col":0}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got struct {
			Error    string              `json:"error"`
			Step     int                 `json:"step"`
			Commands []nav.MotionCommand `json:"commands"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.Step)
		require.Len(t, got.Commands, 1)
		assert.Equal(t, nav.Forward, got.Commands[0].Kind)
	})

	t.Run("missing path", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/commands", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDirectEndpoint(t *testing.T) {
	router := newPlanningRouter(t)

	t.Run("east goal", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/direct", `{"from":{"x":0,"y":0},"to":{"x":2,"y":0}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got DirectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, nav.East, got.Heading)
		assert.InDelta(t, 2.0, got.Distance, 1e-9)
		require.Len(t, got.Commands, 2)
		assert.Equal(t, nav.TurnRight, got.Commands[0].Kind)
		assert.Equal(t, 2*time.Second, got.Commands[1].Duration)
	})

	t.Run("same point", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/direct", `{"from":{"x":1,"y":1},"to":{"x":1,"y":1}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got DirectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Empty(t, got.Commands)
		assert.Equal(t, nav.Undefined, got.Heading)
	})

	t.Run("route too long", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/v1/direct", `{"from":{"x":0,"y":0},"to":{"x":1e12,"y":0}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRandomGridEndpoint(t *testing.T) {
	router := newPlanningRouter(t)

	t.Run("generated grid is solvable", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/grids/random?width=4&height=3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got RandomGridResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 7, got.Grid.Rows())
		assert.Equal(t, 9, got.Grid.Cols())
		assert.Equal(t, maze.CellPosition{Row: 1, Col: 1}, got.Start)
		assert.Equal(t, maze.CellPosition{Row: 5, Col: 7}, got.Goal)

		path, err := maze.FindPath(got.Grid, got.Start, got.Goal)
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})

	t.Run("defaults", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/grids/random", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad size", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/v1/grids/random?width=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(router, http.MethodGet, "/api/v1/grids/random?width=100", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
