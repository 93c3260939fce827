package service

import (
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"
	"healthlearn_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Wizard steps, in order. The step pointer always stays inside
// [StepDefinicion, StepRevision].
const (
	StepDefinicion = 0
	StepEstructura = 1
	StepContenido  = 2
	StepCalidad    = 3
	StepPrecio     = 4
	StepRevision   = 5

	lastStep = StepRevision
)

// StepInfo describes a wizard step for the client's progress header.
type StepInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var WizardSteps = []StepInfo{
	{ID: StepDefinicion, Name: "Definición", Description: "Posiciona tu curso"},
	{ID: StepEstructura, Name: "Estructura", Description: "Organiza el aprendizaje"},
	{ID: StepContenido, Name: "Contenido", Description: "Sube tus materiales"},
	{ID: StepCalidad, Name: "Calidad Académica", Description: "Valida los estándares"},
	{ID: StepPrecio, Name: "Precio y Acceso", Description: "Define cómo se vende"},
	{ID: StepRevision, Name: "Revisión", Description: "Confirma y publica"},
}

// PlantillaSecciones is the recommended pedagogical structure offered on the
// structure step.
var PlantillaSecciones = []string{
	"Introducción",
	"Bases teóricas",
	"Desarrollo del contenido",
	"Casos clínicos / Ejemplos prácticos",
	"Errores frecuentes",
	"Conclusiones prácticas",
}

// AuthoringSession holds one in-progress course draft. Sessions live only in
// memory: abandoning the wizard or letting it idle past the TTL discards the
// draft, matching the no-autosave contract of the authoring flow.
type AuthoringSession struct {
	ID          string            `json:"id"`
	SellerID    string            `json:"-"`
	CurrentStep int               `json:"currentStep"`
	Draft       model.CourseDraft `json:"draft"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	submitting bool
}

// snapshot returns an isolated copy safe to hand out after the lock is
// released. The draft is deep-copied so later in-place edits of the live
// session, such as attaching a video file, cannot reach it.
func (sess *AuthoringSession) snapshot() *AuthoringSession {
	cp := *sess
	cp.Draft = sess.Draft.Clone()
	return &cp
}

// AuthoringService owns the authoring sessions and the step state machine.
type AuthoringService struct {
	CourseRepo *repository.CourseRepository
	Cfg        *config.Config

	mu       sync.Mutex
	sessions map[string]*AuthoringSession
	done     chan struct{}
}

func NewAuthoringService(courseRepo *repository.CourseRepository, cfg *config.Config) *AuthoringService {
	s := &AuthoringService{
		CourseRepo: courseRepo,
		Cfg:        cfg,
		sessions:   make(map[string]*AuthoringSession),
		done:       make(chan struct{}),
	}
	go s.expireLoop()
	return s
}

func (s *AuthoringService) Stop() {
	close(s.done)
}

func (s *AuthoringService) expireLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ttl := time.Duration(s.Cfg.Authoring.SessionTTLMinutes) * time.Minute
			s.mu.Lock()
			for id, sess := range s.sessions {
				if time.Since(sess.UpdatedAt) > ttl {
					delete(s.sessions, id)
					logger.Log.Info("authoring session expired",
						zap.String("session", id), zap.String("seller", sess.SellerID))
				}
			}
			monitoring.AuthoringSessions.Set(float64(len(s.sessions)))
			s.mu.Unlock()
		}
	}
}

// StartSession opens a fresh wizard at step 0 with a fully-defined empty
// draft.
func (s *AuthoringService) StartSession(sellerID string) *AuthoringSession {
	sess := &AuthoringSession{
		ID:        uuid.New().String(),
		SellerID:  sellerID,
		Draft:     model.NewCourseDraft(),
		UpdatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	monitoring.AuthoringSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return sess
}

// session looks up the caller's session. Sessions are private to the seller
// that opened them.
func (s *AuthoringService) session(id, sellerID string) (*AuthoringSession, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.SellerID != sellerID {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

func (s *AuthoringService) GetSession(id, sellerID string) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// UpdateDraft shallow-merges the partial into the draft. No validation
// happens here: partial or invalid values are accepted and only surface in
// the completion checklist.
func (s *AuthoringService) UpdateDraft(id, sellerID string, update model.DraftUpdate) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	sess.Draft = update.Apply(sess.Draft)
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

// Next advances one step. Already on the last step it is a silent no-op: the
// review screen replaces "Siguiente" with the submit action, so the
// transition is practically unreachable, but it must not fail.
func (s *AuthoringService) Next(id, sellerID string) (*AuthoringSession, error) {
	return s.moveTo(id, sellerID, func(current int) int {
		if current < lastStep {
			return current + 1
		}
		return current
	})
}

// Back goes one step back, a no-op at step 0.
func (s *AuthoringService) Back(id, sellerID string) (*AuthoringSession, error) {
	return s.moveTo(id, sellerID, func(current int) int {
		if current > 0 {
			return current - 1
		}
		return current
	})
}

// GoToStep jumps straight to a step, used by the review screen's per-section
// edit links. The index is clamped defensively even though callers only pass
// valid steps.
func (s *AuthoringService) GoToStep(id, sellerID string, step int) (*AuthoringSession, error) {
	return s.moveTo(id, sellerID, func(int) int {
		if step < 0 {
			return 0
		}
		if step > lastStep {
			return lastStep
		}
		return step
	})
}

func (s *AuthoringService) moveTo(id, sellerID string, next func(int) int) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	sess.CurrentStep = next(sess.CurrentStep)
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

// Completion recomputes the per-section checklist from the draft. It is
// derived on demand, never stored, so it cannot drift from the draft.
func (s *AuthoringService) Completion(id, sellerID string) (model.StepCompletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return model.StepCompletion{}, err
	}
	return model.ComputeStepCompletion(sess.Draft), nil
}

// AddVideo appends a new empty video row and returns its id. Ids are unique
// within the draft even when rows are added in the same synchronous batch.
func (s *AuthoringService) AddVideo(id, sellerID string, video model.VideoAsset) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	video.ID = uuid.New().String()
	video.Archivo = nil
	sess.Draft.Videos = append(sess.Draft.Videos, video)
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

func (s *AuthoringService) RemoveVideo(id, sellerID, videoID string) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	videos := sess.Draft.Videos[:0:0]
	for _, v := range sess.Draft.Videos {
		if v.ID != videoID {
			videos = append(videos, v)
		}
	}
	sess.Draft.Videos = videos
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

// AttachVideoFile sets (or replaces) the uploaded file of a video row. A
// probed duration, when available, prefills the free-text duration field
// only if the author has not typed one.
func (s *AuthoringService) AttachVideoFile(id, sellerID, videoID string, file model.FileRef, suggestedDuration string) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range sess.Draft.Videos {
		if sess.Draft.Videos[i].ID == videoID {
			sess.Draft.Videos[i].Archivo = &file
			if sess.Draft.Videos[i].Duracion == "" && suggestedDuration != "" {
				sess.Draft.Videos[i].Duracion = suggestedDuration
			}
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrVideoNotFound
	}
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

func (s *AuthoringService) SetPresentacion(id, sellerID string, file *model.FileRef) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	sess.Draft.Presentacion = file
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

func (s *AuthoringService) AddBibliography(id, sellerID string, ref model.BibliographyReference) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	ref.ID = uuid.New().String()
	sess.Draft.Bibliografia = append(sess.Draft.Bibliografia, ref)
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

func (s *AuthoringService) RemoveBibliography(id, sellerID, refID string) (*AuthoringSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		return nil, err
	}
	refs := sess.Draft.Bibliografia[:0:0]
	for _, r := range sess.Draft.Bibliografia {
		if r.ID != refID {
			refs = append(refs, r)
		}
	}
	sess.Draft.Bibliografia = refs
	sess.UpdatedAt = time.Now()
	return sess.snapshot(), nil
}

// Abandon discards the session and its draft.
func (s *AuthoringService) Abandon(id, sellerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.session(id, sellerID); err != nil {
		return err
	}
	delete(s.sessions, id)
	monitoring.AuthoringSessions.Set(float64(len(s.sessions)))
	return nil
}

// SubmitResult reports what the submission did and which sections were still
// incomplete at the time.
type SubmitResult struct {
	CourseID   string               `json:"courseId,omitempty"`
	Completion model.StepCompletion `json:"completion"`
	Incomplete []string             `json:"incomplete,omitempty"`
	Accepted   bool                 `json:"accepted"`
}

// Submit sends the draft to review. By default incomplete sections are
// surfaced as warnings but do not block, matching the original flow; with
// authoring.strict_submit they turn the submission into an error. A per-
// session in-flight guard swallows rapid double submission.
func (s *AuthoringService) Submit(id, sellerID string) (*SubmitResult, error) {
	s.mu.Lock()
	sess, err := s.session(id, sellerID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.submitting {
		s.mu.Unlock()
		return nil, util.ErrSubmitInFlight
	}
	completion := model.ComputeStepCompletion(sess.Draft)
	if s.Cfg.Authoring.StrictSubmit && !completion.AllComplete() {
		s.mu.Unlock()
		return &SubmitResult{
			Completion: completion,
			Incomplete: completion.Incomplete(),
			Accepted:   false,
		}, util.ErrDraftIncomplete
	}
	sess.submitting = true
	draft := sess.Draft.Clone()
	s.mu.Unlock()

	course := buildCourse(draft, sellerID)
	if err := s.CourseRepo.CreateWithChildren(course); err != nil {
		s.mu.Lock()
		sess.submitting = false
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	monitoring.AuthoringSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	logger.Log.Info("course submitted for review",
		zap.String("course", course.ID), zap.String("seller", sellerID))

	return &SubmitResult{
		CourseID:   course.ID,
		Completion: completion,
		Incomplete: completion.Incomplete(),
		Accepted:   true,
	}, nil
}

// buildCourse materialises the draft into the persistent course aggregate.
func buildCourse(d model.CourseDraft, sellerID string) *model.Course {
	course := &model.Course{
		Titulo:            d.Titulo,
		Subtitulo:         d.Subtitulo,
		Categoria:         d.Categoria,
		Tema:              d.Tema,
		Subtema:           d.Subtema,
		Nivel:             model.CourseLevel(d.NivelCurso),
		PublicoObjetivo:   model.StringList(d.PublicoObjetivo),
		DescripcionCorta:  d.DescripcionCorta,
		QueAprendera:      d.DescripcionDetallada.QueAprendera,
		Requisitos:        d.DescripcionDetallada.Requisitos,
		DirigidoA:         d.DescripcionDetallada.DirigidoA,
		Metodologia:       d.DescripcionDetallada.Metodologia,
		Modalidades:       model.StringList(d.Modalidades),
		Precio:            normalizePrice(d.Precio),
		TipoAcceso:        model.AccessType(d.TipoAcceso),
		Visibilidad:       model.Visibility(d.Visibilidad),
		Status:            model.CourseInReview,
		SellerID:          sellerID,
		AudioClaro:        d.CriteriosCalidad.AudioClaro,
		VideoHD:           d.CriteriosCalidad.VideoHD,
		ContenidoOriginal: d.CriteriosCalidad.ContenidoOriginal,
		CasosPracticos:    d.CriteriosCalidad.CasosPracticos,
	}

	for _, o := range d.ObjetivosAprendizaje {
		if strings.TrimSpace(o) != "" {
			course.Objetivos = append(course.Objetivos, o)
		}
	}

	if d.Presentacion != nil {
		course.PresentacionURL = d.Presentacion.URL
	}

	for i, nombre := range d.EstructuraPersonalizada {
		course.Sections = append(course.Sections, model.CourseSection{
			Nombre: nombre,
			Orden:  i,
		})
	}

	for i, v := range d.Videos {
		cv := model.CourseVideo{
			Seccion:     v.Seccion,
			Titulo:      v.Titulo,
			Duracion:    v.Duracion,
			Descripcion: v.Descripcion,
			Orden:       i,
		}
		if v.Archivo != nil {
			cv.FileURL = v.Archivo.URL
		}
		course.Videos = append(course.Videos, cv)
	}

	for _, b := range d.Bibliografia {
		course.Bibliography = append(course.Bibliography, model.CourseBibliography{
			Tipo:       model.BibliographyType(b.Tipo),
			Referencia: b.Referencia,
			EnlaceDOI:  b.EnlaceDOI,
		})
	}

	return course
}

// normalizePrice renders the price with two decimals when it parses as a
// number, accepting the comma decimal separator. Anything else is stored
// verbatim; format problems show up in review, not here.
func normalizePrice(precio string) string {
	p := strings.ReplaceAll(strings.TrimSpace(precio), ",", ".")
	d, err := decimal.NewFromString(p)
	if err != nil {
		return precio
	}
	return d.StringFixed(2)
}
