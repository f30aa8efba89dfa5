package reservations

import (
	"errors"
	"io"
	"net/http"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Reserve godoc
// @Summary      Reserve one ticket from a spot
// @Description  Allocates from the earliest starting slot that still has capacity
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        name     path      string          true   "Spot name"
// @Param        request  body      ReserveRequest  false  "Optional ticket note"
// @Success      201      {object}  response.StandardApiResponse{data=TicketResponse}
// @Failure      404      {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Failure      409      {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Failure      503      {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Router       /spots/{name}/reserve [post]
func (c *Controller) Reserve(ctx *gin.Context) {
	var req ReserveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(ctx, apperrors.ErrInvalidRequest.WithDetail("%s", err.Error()))
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondError(ctx, apperrors.ErrInvalidRequest.WithDetail("%s", err.Error()))
		return
	}

	ticket, err := c.service.Reserve(ctx.Request.Context(), ctx.Param("name"), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Ticket reserved successfully", ticket, nil)
}
