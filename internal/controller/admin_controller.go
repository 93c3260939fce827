package controller

import (
	"errors"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminController serves the review queues: submitted courses and pending
// seller-promotion requests.
type AdminController struct {
	CourseService *service.CourseService
	UserService   *service.UserService
}

func NewAdminController(courseService *service.CourseService, userService *service.UserService) *AdminController {
	return &AdminController{CourseService: courseService, UserService: userService}
}

// ReviewQueue godoc
// @Summary Courses waiting for review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/courses/review [get]
func (c *AdminController) ReviewQueue(ctx *gin.Context) {
	courses, err := c.CourseService.ListInReview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

// ReviewCourse godoc
// @Summary Publish or reject a submitted course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param body body reviewRequest true "Verdict"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "Not found or not in review"
// @Router /api/admin/courses/{id}/review [post]
func (c *AdminController) ReviewCourse(ctx *gin.Context) {
	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Review(ctx.Request.Context(), ctx.Param("id"), req.Approve)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// SellerRequests godoc
// @Summary Pending seller-promotion requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/seller-requests [get]
func (c *AdminController) SellerRequests(ctx *gin.Context) {
	reqs, err := c.UserService.ListPendingSellerRequests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// ResolveSellerRequest godoc
// @Summary Approve or reject a seller request
// @Description Approval promotes the user to seller
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body reviewRequest true "Verdict"
// @Success 200 {object} util.Response{data=model.SellerRequest}
// @Failure 404 {object} util.Response "Not found or already resolved"
// @Router /api/admin/seller-requests/{id} [post]
func (c *AdminController) ResolveSellerRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resolved, err := c.UserService.ResolveSellerRequest(ctx.Param("id"), claims.UserID, req.Approve)
	if err != nil {
		if errors.Is(err, util.ErrSellerRequestNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resolved)
}
