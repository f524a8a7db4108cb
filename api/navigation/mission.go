package navigation

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/beka-birhanu/vinom-nav/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MissionController submits and tracks missions for authenticated operators.
type MissionController struct {
	missions i.MissionManager
}

// NewMissionController creates a MissionController.
func NewMissionController(missions i.MissionManager) *MissionController {
	return &MissionController{missions: missions}
}

// RegisterPublic registers public routes.
func (mc *MissionController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MissionController) RegisterProtected(route *gin.RouterGroup) {
	missions := route.Group("/missions")
	{
		missions.POST("", mc.submit)
		missions.POST("/stop", mc.stop)
		missions.GET("/:ID", mc.byID)
	}
}

func (mc *MissionController) submit(ctx *gin.Context) {
	var request MissionRequest
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

	mission, err := mc.missions.Submit(ctx.Request.Context(), domain.MissionConfig{
		Mode:  request.Mode,
		Grid:  request.Grid,
		Start: request.Start,
		Goal:  request.Goal,
		From:  request.From.vec(),
		To:    request.To.vec(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingGrid) || errors.Is(err, domain.ErrUnknownMode) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusAccepted
	if mission.Status == domain.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, missionResponse(mission))
}

func (mc *MissionController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	mission, err := mc.missions.ByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, missionResponse(mission))
}

func (mc *MissionController) stop(ctx *gin.Context) {
	if err := mc.missions.Stop(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusAccepted)
}
