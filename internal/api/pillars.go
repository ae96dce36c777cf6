package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/api/objects"
	"github.com/tradeflow/pulse/pkg/telemetry"
)

// PillarAPI handles pillar listing
type PillarAPI struct {
	pillars PillarStore
	logger  *zap.Logger
}

// NewPillarAPI creates a new pillar API
func NewPillarAPI(pillars PillarStore, logger *zap.Logger) *PillarAPI {
	return &PillarAPI{
		pillars: pillars,
		logger:  logger,
	}
}

// List handles GET /api/pillars
func (a *PillarAPI) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "pillars.list")
	defer span.End()

	pillars, err := a.pillars.List(ctx)
	if err != nil {
		a.logger.Error("pillar listing failed", zap.Error(err))
		abortWithError(c, NewError(http.StatusInternalServerError, "failed to list pillars"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"pillars": objects.FromPillars(pillars)})
}
