package controller

import (
	"errors"
	"fmt"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthoringController exposes the course-creation wizard. Every route is
// seller-only and scoped to the session owner.
type AuthoringController struct {
	Authoring *service.AuthoringService
	Storage   *service.StorageService
}

func NewAuthoringController(authoring *service.AuthoringService, storage *service.StorageService) *AuthoringController {
	return &AuthoringController{Authoring: authoring, Storage: storage}
}

func (c *AuthoringController) sellerID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.UserID, true
}

func (c *AuthoringController) respondSession(ctx *gin.Context, sess *service.AuthoringSession, err error) {
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) || errors.Is(err, util.ErrVideoNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"session":    sess,
		"steps":      service.WizardSteps,
		"completion": model.ComputeStepCompletion(sess.Draft),
	})
}

// StartSession godoc
// @Summary Open a new authoring session
// @Description Starts the wizard at step 0 with an empty draft
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/authoring/sessions [post]
func (c *AuthoringController) StartSession(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess := c.Authoring.StartSession(sellerID)
	util.Created(ctx, gin.H{
		"session":   sess,
		"steps":     service.WizardSteps,
		"plantilla": service.PlantillaSecciones,
	})
}

// GetSession godoc
// @Summary Fetch an authoring session
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/authoring/sessions/{id} [get]
func (c *AuthoringController) GetSession(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.GetSession(ctx.Param("id"), sellerID)
	c.respondSession(ctx, sess, err)
}

// UpdateDraft godoc
// @Summary Merge fields into the draft
// @Description Shallow-merges the provided fields; absent fields keep their value
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body model.DraftUpdate true "Fields to merge"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/authoring/sessions/{id}/draft [patch]
func (c *AuthoringController) UpdateDraft(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	var update model.DraftUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sess, err := c.Authoring.UpdateDraft(ctx.Param("id"), sellerID, update)
	c.respondSession(ctx, sess, err)
}

// Next godoc
// @Summary Advance one wizard step
// @Description Past the last step this is a no-op
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/next [post]
func (c *AuthoringController) Next(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.Next(ctx.Param("id"), sellerID)
	c.respondSession(ctx, sess, err)
}

// Back godoc
// @Summary Go back one wizard step
// @Description Before the first step this is a no-op
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/back [post]
func (c *AuthoringController) Back(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.Back(ctx.Param("id"), sellerID)
	c.respondSession(ctx, sess, err)
}

// GoToStep godoc
// @Summary Jump to a wizard step
// @Description Out-of-range steps clamp to the nearest valid one
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param step path int true "Step index"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/goto/{step} [post]
func (c *AuthoringController) GoToStep(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		util.BadRequest(ctx, "invalid step")
		return
	}
	sess, err := c.Authoring.GoToStep(ctx.Param("id"), sellerID, step)
	c.respondSession(ctx, sess, err)
}

// Completion godoc
// @Summary Per-section completion of the draft
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=model.StepCompletion}
// @Router /api/authoring/sessions/{id}/completion [get]
func (c *AuthoringController) Completion(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	completion, err := c.Authoring.Completion(ctx.Param("id"), sellerID)
	if err != nil {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.Success(ctx, gin.H{
		"completion": completion,
		"incomplete": completion.Incomplete(),
		"complete":   completion.AllComplete(),
	})
}

// swagger:model AddVideoRequest
type AddVideoRequest struct {
	Seccion     string `json:"seccion"`
	Titulo      string `json:"titulo"`
	Duracion    string `json:"duracion"`
	Descripcion string `json:"descripcion"`
}

// AddVideo godoc
// @Summary Add a video row to the draft
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body AddVideoRequest true "Video metadata"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/videos [post]
func (c *AuthoringController) AddVideo(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	var req AddVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sess, err := c.Authoring.AddVideo(ctx.Param("id"), sellerID, model.VideoAsset{
		Seccion:     req.Seccion,
		Titulo:      req.Titulo,
		Duracion:    req.Duracion,
		Descripcion: req.Descripcion,
	})
	c.respondSession(ctx, sess, err)
}

// RemoveVideo godoc
// @Summary Remove a video row from the draft
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/videos/{videoId} [delete]
func (c *AuthoringController) RemoveVideo(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.RemoveVideo(ctx.Param("id"), sellerID, ctx.Param("videoId"))
	c.respondSession(ctx, sess, err)
}

// UploadVideoFile godoc
// @Summary Upload the file for a draft video
// @Description Stores the file and prefills the duration from probing when the field is empty
// @Tags authoring
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param videoId path string true "Video ID"
// @Param file formData file true "Video file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Not a video file"
// @Router /api/authoring/sessions/{id}/videos/{videoId}/file [post]
func (c *AuthoringController) UploadVideoFile(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedVideoExtensions) {
		util.BadRequest(ctx, "unsupported video format")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	// Probe before shipping to storage; failures only cost the prefill.
	suggested := ""
	if info, err := util.GetVideoInfo(tmpPath); err == nil {
		suggested = util.FormatDuration(info.Duration)
	} else {
		logger.Log.Warn("video probe failed", zap.Error(err))
	}

	objectName := fmt.Sprintf("videos/%s/%s%s", sellerID, uuid.NewString(), filepath.Ext(file.Filename))
	url, err := c.Storage.UploadFile(ctx.Request.Context(), objectName, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	sess, err := c.Authoring.AttachVideoFile(ctx.Param("id"), sellerID, ctx.Param("videoId"), model.FileRef{
		URL:         url,
		Nombre:      file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}, suggested)
	c.respondSession(ctx, sess, err)
}

// UploadPresentation godoc
// @Summary Upload the course presentation
// @Tags authoring
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param file formData file true "Presentation file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Unsupported format"
// @Router /api/authoring/sessions/{id}/presentation [post]
func (c *AuthoringController) UploadPresentation(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedPresentationExtensions) {
		util.BadRequest(ctx, "unsupported presentation format")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("presentations/%s/%s%s", sellerID, uuid.NewString(), filepath.Ext(file.Filename))
	url, err := c.Storage.Upload(ctx.Request.Context(), objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	sess, err := c.Authoring.SetPresentacion(ctx.Param("id"), sellerID, &model.FileRef{
		URL:         url,
		Nombre:      file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	})
	c.respondSession(ctx, sess, err)
}

// RemovePresentation godoc
// @Summary Remove the course presentation from the draft
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/presentation [delete]
func (c *AuthoringController) RemovePresentation(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.SetPresentacion(ctx.Param("id"), sellerID, nil)
	c.respondSession(ctx, sess, err)
}

// swagger:model AddBibliographyRequest
type AddBibliographyRequest struct {
	Tipo       string `json:"tipo" binding:"required"`
	Referencia string `json:"referencia" binding:"required"`
	EnlaceDOI  string `json:"enlaceDOI"`
}

// AddBibliography godoc
// @Summary Add a bibliography reference
// @Tags authoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body AddBibliographyRequest true "Reference"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/bibliography [post]
func (c *AuthoringController) AddBibliography(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	var req AddBibliographyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !model.BibliographyType(req.Tipo).Valid() {
		util.BadRequest(ctx, "tipo de referencia no válido")
		return
	}
	sess, err := c.Authoring.AddBibliography(ctx.Param("id"), sellerID, model.BibliographyReference{
		Tipo:       req.Tipo,
		Referencia: req.Referencia,
		EnlaceDOI:  req.EnlaceDOI,
	})
	c.respondSession(ctx, sess, err)
}

// RemoveBibliography godoc
// @Summary Remove a bibliography reference
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param refId path string true "Reference ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id}/bibliography/{refId} [delete]
func (c *AuthoringController) RemoveBibliography(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	sess, err := c.Authoring.RemoveBibliography(ctx.Param("id"), sellerID, ctx.Param("refId"))
	c.respondSession(ctx, sess, err)
}

// Abandon godoc
// @Summary Abandon the wizard and discard the draft
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/authoring/sessions/{id} [delete]
func (c *AuthoringController) Abandon(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}
	if err := c.Authoring.Abandon(ctx.Param("id"), sellerID); err != nil {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.Success(ctx, gin.H{"abandoned": true})
}

// Submit godoc
// @Summary Submit the draft for review
// @Description Creates the course in review state; incomplete sections are reported, and block only in strict mode
// @Tags authoring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 409 {object} util.Response "Submission already in progress"
// @Failure 422 {object} util.Response "Incomplete draft (strict mode)"
// @Router /api/authoring/sessions/{id}/submit [post]
func (c *AuthoringController) Submit(ctx *gin.Context) {
	sellerID, ok := c.sellerID(ctx)
	if !ok {
		return
	}

	result, err := c.Authoring.Submit(ctx.Param("id"), sellerID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrSubmitInFlight):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrDraftIncomplete):
			ctx.JSON(http.StatusUnprocessableEntity, util.Response{
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
				Detail:  err.Error(),
				Data:    result,
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}
