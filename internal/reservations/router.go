package reservations

import (
	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures reservation routes under /spots
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	spots := rg.Group("/spots")
	{
		spots.POST("/:name/reserve", controller.Reserve) // POST /api/v1/spots/:name/reserve
	}
}
