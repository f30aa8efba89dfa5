package spots

import (
	"github.com/gin-gonic/gin"
)

// SetupSpotRoutes configures spot lifecycle routes
func SetupSpotRoutes(rg *gin.RouterGroup, controller *Controller) {
	spots := rg.Group("/spots")
	{
		spots.POST("", controller.CreateSpot)    // POST /api/v1/spots
		spots.GET("/:name", controller.GetSpot) // GET /api/v1/spots/:name
	}
}
