package navigation

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/spatial/r2"
)

const defaultGridSide = 5

// PlanningController serves stateless route planning.
type PlanningController struct {
	navConfig nav.Config
}

// NewPlanningController creates a PlanningController planning with cfg.
func NewPlanningController(cfg nav.Config) (*PlanningController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PlanningController{navConfig: cfg}, nil
}

// RegisterPublic registers public routes.
func (pc *PlanningController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/paths", pc.findPath)
	route.POST("/commands", pc.sequence)
	route.POST("/direct", pc.direct)
	route.GET("/grids/random", pc.randomGrid)
}

// RegisterProtected registers protected routes.
func (pc *PlanningController) RegisterProtected(route *gin.RouterGroup) {}

func (pc *PlanningController) findPath(ctx *gin.Context) {
	var request PathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Grid != nil {
		if err := request.Grid.Validate(); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	path, err := maze.FindPath(request.Grid, request.Start, request.Goal)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &PathResponse{Path: path, Found: len(path) > 0})
}

func (pc *PlanningController) sequence(ctx *gin.Context) {
	var request CommandsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commands, err := nav.Sequence(request.Path, pc.navConfig)
	if err != nil {
		var nonAdjacent *nav.NonAdjacentError
		if errors.As(err, &nonAdjacent) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    err.Error(),
				"step":     nonAdjacent.Step,
				"commands": commands,
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &CommandsResponse{
		Commands:        commands,
		TotalDurationMs: totalDuration(commands).Milliseconds(),
	})
}

func (pc *PlanningController) direct(ctx *gin.Context) {
	var request DirectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, to := request.From.vec(), request.To.vec()
	commands, err := nav.DirectRoute(from, to, pc.navConfig)
	if err != nil {
		if errors.Is(err, nav.ErrRouteTooLong) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := &DirectResponse{
		Distance: r2.Norm(r2.Sub(to, from)),
		Commands: commands,
	}
	if from != to {
		response.Bearing = nav.Bearing(from, to)
		response.Heading = nav.Quadrant(response.Bearing)
	}
	ctx.JSON(http.StatusOK, response)
}

func (pc *PlanningController) randomGrid(ctx *gin.Context) {
	width, err := intQuery(ctx, "width", defaultGridSide)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	height, err := intQuery(ctx, "height", defaultGridSide)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	grid, err := maze.NewRandomGrid(width, height, rng)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &RandomGridResponse{
		Grid:  grid,
		Start: maze.CellCenter(maze.CellPosition{Row: 0, Col: 0}),
		Goal:  maze.CellCenter(maze.CellPosition{Row: height - 1, Col: width - 1}),
	})
}

func intQuery(ctx *gin.Context, key string, defaultValue int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
