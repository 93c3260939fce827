package service

import (
	"testing"

	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testCourseRepo(t *testing.T) *repository.CourseRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.CourseSection{},
		&model.CourseVideo{},
		&model.CourseBibliography{},
	))
	return repository.NewCourseRepository(db)
}

func testAuthoringService(t *testing.T) *AuthoringService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Authoring.SessionTTLMinutes = 120
	svc := NewAuthoringService(testCourseRepo(t), cfg)
	t.Cleanup(svc.Stop)
	return svc
}

const seller = "seller-1"

func TestStartSessionBeginsAtStepZero(t *testing.T) {
	svc := testAuthoringService(t)

	sess := svc.StartSession(seller)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, StepDefinicion, sess.CurrentStep)
	assert.Equal(t, model.NewCourseDraft(), sess.Draft)
}

func TestSessionIsPrivateToItsSeller(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	_, err := svc.GetSession(sess.ID, "someone-else")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.GetSession("missing", seller)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestNavigationClamps(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	// Back at step 0 is a silent no-op.
	got, err := svc.Back(sess.ID, seller)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStep)

	// Walk forward to the last step, then keep pressing next.
	for i := 0; i < 10; i++ {
		got, err = svc.Next(sess.ID, seller)
		require.NoError(t, err)
	}
	assert.Equal(t, StepRevision, got.CurrentStep)
}

func TestGoToStepClamps(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	got, err := svc.GoToStep(sess.ID, seller, 99)
	require.NoError(t, err)
	assert.Equal(t, StepRevision, got.CurrentStep)

	got, err = svc.GoToStep(sess.ID, seller, -3)
	require.NoError(t, err)
	assert.Equal(t, StepDefinicion, got.CurrentStep)

	got, err = svc.GoToStep(sess.ID, seller, StepCalidad)
	require.NoError(t, err)
	assert.Equal(t, StepCalidad, got.CurrentStep)
}

func TestUpdateDraftMerges(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	_, err := svc.UpdateDraft(sess.ID, seller, model.DraftUpdate{Titulo: strPtrS("ECG básico")})
	require.NoError(t, err)

	got, err := svc.UpdateDraft(sess.ID, seller, model.DraftUpdate{Categoria: strPtrS("Cardiología")})
	require.NoError(t, err)

	assert.Equal(t, "ECG básico", got.Draft.Titulo)
	assert.Equal(t, "Cardiología", got.Draft.Categoria)
}

func TestAddVideoAssignsUniqueIDs(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		got, err := svc.AddVideo(sess.ID, seller, model.VideoAsset{Titulo: "Clip"})
		require.NoError(t, err)
		id := got.Draft.Videos[len(got.Draft.Videos)-1].ID
		assert.False(t, seen[id], "duplicate video id %s", id)
		seen[id] = true
	}
}

func TestRemoveVideo(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	first, err := svc.AddVideo(sess.ID, seller, model.VideoAsset{Titulo: "Uno"})
	require.NoError(t, err)
	_, err = svc.AddVideo(sess.ID, seller, model.VideoAsset{Titulo: "Dos"})
	require.NoError(t, err)

	got, err := svc.RemoveVideo(sess.ID, seller, first.Draft.Videos[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Draft.Videos, 1)
	assert.Equal(t, "Dos", got.Draft.Videos[0].Titulo)
}

func TestAttachVideoFilePrefillsDuration(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	added, err := svc.AddVideo(sess.ID, seller, model.VideoAsset{Titulo: "Clip"})
	require.NoError(t, err)
	videoID := added.Draft.Videos[0].ID

	file := model.FileRef{URL: "/uploads/v.mp4", Nombre: "v.mp4"}
	got, err := svc.AttachVideoFile(sess.ID, seller, videoID, file, "12 min")
	require.NoError(t, err)
	assert.Equal(t, "12 min", got.Draft.Videos[0].Duracion)
	require.NotNil(t, got.Draft.Videos[0].Archivo)

	// A typed duration is never overwritten by the probe.
	_, err = svc.UpdateDraft(sess.ID, seller, model.DraftUpdate{})
	require.NoError(t, err)
	got, err = svc.AttachVideoFile(sess.ID, seller, videoID, file, "99 min")
	require.NoError(t, err)
	assert.Equal(t, "12 min", got.Draft.Videos[0].Duracion)
}

func TestBibliographyAddRemove(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	got, err := svc.AddBibliography(sess.ID, seller, model.BibliographyReference{
		Tipo: "Guía clínica", Referencia: "ESC 2023",
	})
	require.NoError(t, err)
	require.Len(t, got.Draft.Bibliografia, 1)
	refID := got.Draft.Bibliografia[0].ID
	assert.NotEmpty(t, refID)

	got, err = svc.RemoveBibliography(sess.ID, seller, refID)
	require.NoError(t, err)
	assert.Empty(t, got.Draft.Bibliografia)
}

func TestAbandonDiscardsSession(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	require.NoError(t, svc.Abandon(sess.ID, seller))

	_, err := svc.GetSession(sess.ID, seller)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func fillDraft(t *testing.T, svc *AuthoringService, sessID string) {
	t.Helper()
	_, err := svc.UpdateDraft(sessID, seller, model.DraftUpdate{
		Titulo:                  strPtrS("ECG básico"),
		Categoria:               strPtrS("Cardiología"),
		Tema:                    strPtrS("ECG"),
		NivelCurso:              strPtrS("basico"),
		PublicoObjetivo:         &[]string{"Medicina"},
		EstructuraPersonalizada: &[]string{"Introducción"},
		DescripcionDetallada:    &model.DetailedDescription{QueAprendera: "Interpretar trazados"},
		ObjetivosAprendizaje:    &[]string{"Reconocer ritmos"},
		Modalidades:             &[]string{"video"},
		CriteriosCalidad:        &model.QualityCriteria{AudioClaro: true},
		Precio:                  strPtrS("49.90"),
		TipoAcceso:              strPtrS("pago-unico"),
		Visibilidad:             strPtrS("publico"),
	})
	require.NoError(t, err)
	_, err = svc.AddVideo(sessID, seller, model.VideoAsset{Titulo: "Derivaciones", Seccion: "Introducción"})
	require.NoError(t, err)
}

func TestSubmitCompleteDraft(t *testing.T) {
	repo := testCourseRepo(t)
	cfg := &config.Config{}
	cfg.Authoring.SessionTTLMinutes = 120
	svc := NewAuthoringService(repo, cfg)
	t.Cleanup(svc.Stop)

	sess := svc.StartSession(seller)
	fillDraft(t, svc, sess.ID)

	result, err := svc.Submit(sess.ID, seller)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Empty(t, result.Incomplete)
	require.NotEmpty(t, result.CourseID)

	// The session is gone after a successful submit.
	_, err = svc.GetSession(sess.ID, seller)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	course, err := repo.FindByID(result.CourseID)
	require.NoError(t, err)
	assert.Equal(t, model.CourseInReview, course.Status)
	assert.Equal(t, seller, course.SellerID)
	assert.Equal(t, "ECG básico", course.Titulo)
	require.Len(t, course.Videos, 1)
	require.Len(t, course.Sections, 1)
}

func TestSubmitIncompleteDraftPermissive(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	// Only pricing filled in; the rest stays incomplete.
	_, err := svc.UpdateDraft(sess.ID, seller, model.DraftUpdate{
		Titulo:      strPtrS("Curso a medias"),
		Precio:      strPtrS("10"),
		TipoAcceso:  strPtrS("pago-unico"),
		Visibilidad: strPtrS("publico"),
	})
	require.NoError(t, err)

	result, err := svc.Submit(sess.ID, seller)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Contains(t, result.Incomplete, "basico")
	assert.Contains(t, result.Incomplete, "contenido")
	assert.NotContains(t, result.Incomplete, "precio")
}

func TestSubmitIncompleteDraftStrict(t *testing.T) {
	cfg := &config.Config{}
	cfg.Authoring.SessionTTLMinutes = 120
	cfg.Authoring.StrictSubmit = true
	svc := NewAuthoringService(testCourseRepo(t), cfg)
	t.Cleanup(svc.Stop)

	sess := svc.StartSession(seller)
	result, err := svc.Submit(sess.ID, seller)
	assert.ErrorIs(t, err, util.ErrDraftIncomplete)
	require.NotNil(t, result)
	assert.False(t, result.Accepted)
	assert.NotEmpty(t, result.Incomplete)

	// A strict rejection keeps the session alive for fixing.
	_, err = svc.GetSession(sess.ID, seller)
	assert.NoError(t, err)
}

func TestSubmitNormalizesPriceAndObjectives(t *testing.T) {
	repo := testCourseRepo(t)
	cfg := &config.Config{}
	cfg.Authoring.SessionTTLMinutes = 120
	svc := NewAuthoringService(repo, cfg)
	t.Cleanup(svc.Stop)

	sess := svc.StartSession(seller)
	fillDraft(t, svc, sess.ID)
	_, err := svc.UpdateDraft(sess.ID, seller, model.DraftUpdate{
		Precio:               strPtrS("49,90"),
		ObjetivosAprendizaje: &[]string{"Reconocer ritmos", "", "   "},
	})
	require.NoError(t, err)

	result, err := svc.Submit(sess.ID, seller)
	require.NoError(t, err)

	course, err := repo.FindByID(result.CourseID)
	require.NoError(t, err)
	assert.Equal(t, "49.90", course.Precio)
	// Blank objective rows are dropped on materialization.
	assert.Equal(t, model.StringList{"Reconocer ritmos"}, course.Objetivos)
}

func strPtrS(s string) *string { return &s }

func TestNavigationRoundTripFromInteriorSteps(t *testing.T) {
	svc := testAuthoringService(t)

	for step := StepEstructura; step <= StepPrecio; step++ {
		sess := svc.StartSession(seller)
		_, err := svc.GoToStep(sess.ID, seller, step)
		require.NoError(t, err)

		_, err = svc.Next(sess.ID, seller)
		require.NoError(t, err)
		got, err := svc.Back(sess.ID, seller)
		require.NoError(t, err)
		assert.Equal(t, step, got.CurrentStep)

		_, err = svc.Back(sess.ID, seller)
		require.NoError(t, err)
		got, err = svc.Next(sess.ID, seller)
		require.NoError(t, err)
		assert.Equal(t, step, got.CurrentStep)
	}
}

func TestSnapshotIsIsolatedFromLaterEdits(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	added, err := svc.AddVideo(sess.ID, seller, model.VideoAsset{Titulo: "Clip"})
	require.NoError(t, err)
	videoID := added.Draft.Videos[0].ID

	before, err := svc.GetSession(sess.ID, seller)
	require.NoError(t, err)

	file := model.FileRef{URL: "/uploads/v.mp4", Nombre: "v.mp4"}
	_, err = svc.AttachVideoFile(sess.ID, seller, videoID, file, "12 min")
	require.NoError(t, err)

	// The earlier snapshot must not see the in-place attach.
	assert.Nil(t, before.Draft.Videos[0].Archivo)
	assert.Empty(t, before.Draft.Videos[0].Duracion)

	after, err := svc.GetSession(sess.ID, seller)
	require.NoError(t, err)
	require.NotNil(t, after.Draft.Videos[0].Archivo)
	assert.Equal(t, "12 min", after.Draft.Videos[0].Duracion)
}

func TestAttachVideoFileUnknownVideo(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)

	file := model.FileRef{URL: "/uploads/v.mp4", Nombre: "v.mp4"}
	_, err := svc.AttachVideoFile(sess.ID, seller, "missing", file, "")
	assert.ErrorIs(t, err, util.ErrVideoNotFound)
}

func TestSubmitRejectedWhileAnotherIsInFlight(t *testing.T) {
	svc := testAuthoringService(t)
	sess := svc.StartSession(seller)
	fillDraft(t, svc, sess.ID)

	svc.mu.Lock()
	svc.sessions[sess.ID].submitting = true
	svc.mu.Unlock()

	_, err := svc.Submit(sess.ID, seller)
	assert.ErrorIs(t, err, util.ErrSubmitInFlight)

	// The session is untouched and submits normally once the first
	// attempt is no longer running.
	svc.mu.Lock()
	svc.sessions[sess.ID].submitting = false
	svc.mu.Unlock()

	result, err := svc.Submit(sess.ID, seller)
	require.NoError(t, err)
	assert.True(t, result.Accepted)

	_, err = svc.GetSession(sess.ID, seller)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
