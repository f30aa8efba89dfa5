package spots

import (
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

// CreateSpot godoc
// @Summary      Create a spot with its slots
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSpotRequest  true  "Spot definition"
// @Success      201      {object}  response.StandardApiResponse{data=SpotResponse}
// @Failure      400      {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Failure      409      {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Router       /spots [post]
func (c *Controller) CreateSpot(ctx *gin.Context) {
	var req CreateSpotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.ErrInvalidRequest.WithDetail("%s", err.Error()))
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondError(ctx, apperrors.ErrInvalidRequest.WithDetail("%s", err.Error()))
		return
	}

	spot, err := c.service.CreateSpot(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Spot created successfully", spot, nil)
}

// GetSpot godoc
// @Summary      Get a spot with current slot availability
// @Tags         spots
// @Produce      json
// @Param        name  path      string  true  "Spot name"
// @Success      200   {object}  response.StandardApiResponse{data=SpotResponse}
// @Failure      404   {object}  response.StandardApiResponse{errors=response.ErrorDetail}
// @Router       /spots/{name} [get]
func (c *Controller) GetSpot(ctx *gin.Context) {
	spot, err := c.service.GetSpot(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spot retrieved successfully", spot, nil)
}
