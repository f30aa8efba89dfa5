package redemptions

import (
	"github.com/gin-gonic/gin"
)

// SetupRedemptionRoutes configures ticket lookup and presentment routes
func SetupRedemptionRoutes(rg *gin.RouterGroup, controller *Controller) {
	tickets := rg.Group("/tickets/:spotId/:ticketId")
	{
		tickets.GET("", controller.GetTicket)        // GET /api/v1/tickets/:spotId/:ticketId
		tickets.POST("/redeem", controller.Redeem) // POST /api/v1/tickets/:spotId/:ticketId/redeem
	}
}
