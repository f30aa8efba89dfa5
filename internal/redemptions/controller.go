package redemptions

import (
	"net/http"

	"spotly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Redeem godoc
// @Summary      Present a ticket at the gate
// @Description  Increments the presentment count and returns the count before this call
// @Tags         redemptions
// @Produce      json
// @Param        spotId    path      string  true  "Spot ID"
// @Param        ticketId  path      string  true  "Ticket ID"
// @Success      200       {object}  response.StandardApiResponse{data=RedeemResponse}
// @Failure      404       {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Failure      503       {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Router       /tickets/{spotId}/{ticketId}/redeem [post]
func (c *Controller) Redeem(ctx *gin.Context) {
	result, err := c.service.Redeem(ctx.Request.Context(), ctx.Param("spotId"), ctx.Param("ticketId"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket redeemed successfully", result, nil)
}

// GetTicket godoc
// @Summary      Look up a ticket without presenting it
// @Tags         redemptions
// @Produce      json
// @Param        spotId    path      string  true  "Spot ID"
// @Param        ticketId  path      string  true  "Ticket ID"
// @Success      200       {object}  response.StandardApiResponse{data=reservations.TicketResponse}
// @Failure      404       {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Router       /tickets/{spotId}/{ticketId} [get]
func (c *Controller) GetTicket(ctx *gin.Context) {
	ticket, err := c.service.GetTicket(ctx.Request.Context(), ctx.Param("spotId"), ctx.Param("ticketId"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}
