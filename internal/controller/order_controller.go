package controller

import (
	"errors"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	OrderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{OrderService: orderService}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Opens a pending order at the current price; returns the existing pending order on repeat calls
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 201 {object} util.Response{data=model.Order}
// @Failure 404 {object} util.Response "Course not published"
// @Failure 409 {object} util.Response "Already purchased"
// @Router /api/courses/{id}/enroll [post]
func (c *OrderController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	order, err := c.OrderService.Enroll(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrAlreadyPurchased):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, order)
}

// Confirm godoc
// @Summary Confirm payment of a pending order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} util.Response{data=model.Order}
// @Failure 403 {object} util.Response "Not the order owner"
// @Failure 404 {object} util.Response
// @Router /api/orders/{id}/confirm [post]
func (c *OrderController) Confirm(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	order, err := c.OrderService.Confirm(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrOrderNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, order)
}

// List godoc
// @Summary Orders of the authenticated user
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	orders, err := c.OrderService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, orders)
}
