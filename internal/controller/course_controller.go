package controller

import (
	"errors"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	AuthService   *service.AuthService
}

func NewCourseController(courseService *service.CourseService, authService *service.AuthService) *CourseController {
	return &CourseController{CourseService: courseService, AuthService: authService}
}

// List godoc
// @Summary Public course catalog
// @Tags courses
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=service.CourseList}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Detail godoc
// @Summary Course detail with access gate
// @Description Works without a token; the gate decision says whether content is blocked and why
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	// nil for anonymous viewers; the gate handles both cases.
	user := c.AuthService.GetCurrentUser(ctx)

	detail, err := c.CourseService.GetDetail(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.Success(ctx, detail)
}

// Content godoc
// @Summary Course program (sections and videos)
// @Description Protected sub-resource; a blocked gate answers 401 (login) or 403 (profile) with the decision in data
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseContent}
// @Failure 401 {object} util.Response "Login required"
// @Failure 403 {object} util.Response "Professional profile required"
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/content [get]
func (c *CourseController) Content(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)

	content, gate, err := c.CourseService.GetContent(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			code := http.StatusUnauthorized
			if gate.Kind == service.GateProfile {
				code = http.StatusForbidden
			}
			ctx.JSON(code, util.Response{
				Code:    code,
				Message: "Contenido protegido",
				Detail:  "Contenido protegido",
				Data:    gin.H{"gate": gate},
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, content)
}

// MyCourses godoc
// @Summary Courses of the authenticated seller
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/courses/mine [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courses, err := c.CourseService.ListBySeller(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ToggleFavorite godoc
// @Summary Toggle a course in favorites
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/favorite [post]
func (c *CourseController) ToggleFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	favorite, err := c.CourseService.ToggleFavorite(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"favorite": favorite})
}

// Unfavorite godoc
// @Summary Remove a course from favorites
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/favorite [delete]
func (c *CourseController) Unfavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.Unfavorite(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"favorite": false})
}

// Favorites godoc
// @Summary Favorite courses of the authenticated user
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/favorites [get]
func (c *CourseController) Favorites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	favorites, err := c.CourseService.ListFavorites(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, favorites)
}
