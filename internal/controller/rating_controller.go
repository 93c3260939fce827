package controller

import (
	"errors"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingService *service.RatingService
}

func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{RatingService: ratingService}
}

type rateCourseInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Rate godoc
// @Summary Rate a purchased course
// @Description One rating per buyer; requires a paid order
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param input body rateCourseInput true "Rating"
// @Success 201 {object} util.Response{data=model.CourseRating}
// @Failure 400 {object} util.Response "Already rated"
// @Failure 403 {object} util.Response "Course not purchased"
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/reviews [post]
func (c *RatingController) Rate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var in rateCourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rating, err := c.RatingService.Rate(ctx.Request.Context(), claims.UserID, ctx.Param("id"), in.Rating, in.Comment)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrCourseNotPurchased):
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrAlreadyRated):
			util.Error(ctx, http.StatusBadRequest, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, rating)
}

// List godoc
// @Summary Ratings of a course
// @Tags ratings
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=[]model.CourseRating}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/reviews [get]
func (c *RatingController) List(ctx *gin.Context) {
	ratings, err := c.RatingService.ListByCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ratings)
}

// MyRating godoc
// @Summary The authenticated user's rating of a course
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=model.CourseRating}
// @Failure 404 {object} util.Response "Not rated yet"
// @Router /api/courses/{id}/reviews/me [get]
func (c *RatingController) MyRating(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rating, err := c.RatingService.MyRating(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.Success(ctx, rating)
}
