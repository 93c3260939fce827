package model

import "strings"

// CourseDraft is the aggregate a course-authoring session edits. Every field
// is always defined: zero values and empty slices, never nil maps or missing
// groups, so a partial update can be merged in at any time.
type CourseDraft struct {
	Titulo           string   `json:"titulo"`
	Subtitulo        string   `json:"subtitulo"`
	Categoria        string   `json:"categoria"`
	Tema             string   `json:"tema"`
	Subtema          string   `json:"subtema"`
	NivelCurso       string   `json:"nivelCurso"`
	PublicoObjetivo  []string `json:"publicoObjetivo"`
	DescripcionCorta string   `json:"descripcionCorta"`

	UsarPlantilla           bool     `json:"usarPlantilla"`
	EstructuraPersonalizada []string `json:"estructuraPersonalizada"`

	Videos               []VideoAsset        `json:"videos"`
	Presentacion         *FileRef            `json:"presentacion"`
	DescripcionDetallada DetailedDescription `json:"descripcionDetallada"`

	ObjetivosAprendizaje []string                `json:"objetivosAprendizaje"`
	Modalidades          []string                `json:"modalidades"`
	Bibliografia         []BibliographyReference `json:"bibliografia"`
	CriteriosCalidad     QualityCriteria         `json:"criteriosCalidad"`

	Precio      string `json:"precio"`
	TipoAcceso  string `json:"tipoAcceso"`
	Visibilidad string `json:"visibilidad"`
}

// FileRef points at an uploaded binary. Nil until the user attaches a file.
type FileRef struct {
	URL         string `json:"url"`
	Nombre      string `json:"nombre"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type VideoAsset struct {
	ID          string   `json:"id"`
	Seccion     string   `json:"seccion"`
	Titulo      string   `json:"titulo"`
	Archivo     *FileRef `json:"archivo"`
	Duracion    string   `json:"duracion"`
	Descripcion string   `json:"descripcion"`
}

type BibliographyReference struct {
	ID         string `json:"id"`
	Tipo       string `json:"tipo"`
	Referencia string `json:"referencia"`
	EnlaceDOI  string `json:"enlaceDOI"`
}

type DetailedDescription struct {
	QueAprendera string `json:"queAprendera"`
	Requisitos   string `json:"requisitos"`
	DirigidoA    string `json:"dirigidoA"`
	Metodologia  string `json:"metodologia"`
}

type QualityCriteria struct {
	AudioClaro        bool `json:"audioClaro"`
	VideoHD           bool `json:"videoHD"`
	ContenidoOriginal bool `json:"contenidoOriginal"`
	CasosPracticos    bool `json:"casosPracticos"`
}

// NewCourseDraft returns the fully-defined empty draft the wizard starts
// from. The objectives list starts with one blank entry so the first input
// row is already present.
func NewCourseDraft() CourseDraft {
	return CourseDraft{
		PublicoObjetivo:         []string{},
		EstructuraPersonalizada: []string{},
		Videos:                  []VideoAsset{},
		ObjetivosAprendizaje:    []string{""},
		Modalidades:             []string{},
		Bibliografia:            []BibliographyReference{},
	}
}

// Clone returns a copy whose slices and file refs share nothing with the
// receiver, so the copy can be read while the original keeps being edited.
// Empty slices stay empty, not nil, keeping every field defined.
func (d CourseDraft) Clone() CourseDraft {
	c := d
	c.PublicoObjetivo = cloneStrings(d.PublicoObjetivo)
	c.EstructuraPersonalizada = cloneStrings(d.EstructuraPersonalizada)
	c.ObjetivosAprendizaje = cloneStrings(d.ObjetivosAprendizaje)
	c.Modalidades = cloneStrings(d.Modalidades)

	c.Videos = make([]VideoAsset, len(d.Videos))
	copy(c.Videos, d.Videos)
	for i := range c.Videos {
		if c.Videos[i].Archivo != nil {
			f := *c.Videos[i].Archivo
			c.Videos[i].Archivo = &f
		}
	}

	c.Bibliografia = make([]BibliographyReference, len(d.Bibliografia))
	copy(c.Bibliografia, d.Bibliografia)

	if d.Presentacion != nil {
		p := *d.Presentacion
		c.Presentacion = &p
	}
	return c
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// DraftUpdate is a partial CourseDraft. Nil fields are left untouched;
// non-nil fields replace the draft's value wholesale (shallow merge).
type DraftUpdate struct {
	Titulo           *string   `json:"titulo,omitempty"`
	Subtitulo        *string   `json:"subtitulo,omitempty"`
	Categoria        *string   `json:"categoria,omitempty"`
	Tema             *string   `json:"tema,omitempty"`
	Subtema          *string   `json:"subtema,omitempty"`
	NivelCurso       *string   `json:"nivelCurso,omitempty"`
	PublicoObjetivo  *[]string `json:"publicoObjetivo,omitempty"`
	DescripcionCorta *string   `json:"descripcionCorta,omitempty"`

	UsarPlantilla           *bool     `json:"usarPlantilla,omitempty"`
	EstructuraPersonalizada *[]string `json:"estructuraPersonalizada,omitempty"`

	Videos               *[]VideoAsset        `json:"videos,omitempty"`
	Presentacion         *FileRef             `json:"presentacion,omitempty"`
	DescripcionDetallada *DetailedDescription `json:"descripcionDetallada,omitempty"`

	ObjetivosAprendizaje *[]string                `json:"objetivosAprendizaje,omitempty"`
	Modalidades          *[]string                `json:"modalidades,omitempty"`
	Bibliografia         *[]BibliographyReference `json:"bibliografia,omitempty"`
	CriteriosCalidad     *QualityCriteria         `json:"criteriosCalidad,omitempty"`

	Precio      *string `json:"precio,omitempty"`
	TipoAcceso  *string `json:"tipoAcceso,omitempty"`
	Visibilidad *string `json:"visibilidad,omitempty"`
}

// Apply merges the update into a copy of the draft and returns it. The
// receiver is never mutated, so callers keep change-detection semantics.
func (u DraftUpdate) Apply(d CourseDraft) CourseDraft {
	if u.Titulo != nil {
		d.Titulo = *u.Titulo
	}
	if u.Subtitulo != nil {
		d.Subtitulo = *u.Subtitulo
	}
	if u.Categoria != nil {
		d.Categoria = *u.Categoria
	}
	if u.Tema != nil {
		d.Tema = *u.Tema
	}
	if u.Subtema != nil {
		d.Subtema = *u.Subtema
	}
	if u.NivelCurso != nil {
		d.NivelCurso = *u.NivelCurso
	}
	if u.PublicoObjetivo != nil {
		d.PublicoObjetivo = *u.PublicoObjetivo
	}
	if u.DescripcionCorta != nil {
		d.DescripcionCorta = *u.DescripcionCorta
	}
	if u.UsarPlantilla != nil {
		d.UsarPlantilla = *u.UsarPlantilla
	}
	if u.EstructuraPersonalizada != nil {
		d.EstructuraPersonalizada = *u.EstructuraPersonalizada
	}
	if u.Videos != nil {
		d.Videos = *u.Videos
	}
	if u.Presentacion != nil {
		d.Presentacion = u.Presentacion
	}
	if u.DescripcionDetallada != nil {
		d.DescripcionDetallada = *u.DescripcionDetallada
	}
	if u.ObjetivosAprendizaje != nil {
		d.ObjetivosAprendizaje = *u.ObjetivosAprendizaje
	}
	if u.Modalidades != nil {
		d.Modalidades = *u.Modalidades
	}
	if u.Bibliografia != nil {
		d.Bibliografia = *u.Bibliografia
	}
	if u.CriteriosCalidad != nil {
		d.CriteriosCalidad = *u.CriteriosCalidad
	}
	if u.Precio != nil {
		d.Precio = *u.Precio
	}
	if u.TipoAcceso != nil {
		d.TipoAcceso = *u.TipoAcceso
	}
	if u.Visibilidad != nil {
		d.Visibilidad = *u.Visibilidad
	}
	return d
}

// StepCompletion is derived from the draft for the review step. It is never
// stored; recompute it whenever the draft changes.
type StepCompletion struct {
	Basico     bool `json:"basico"`
	Estructura bool `json:"estructura"`
	Contenido  bool `json:"contenido"`
	Calidad    bool `json:"calidad"`
	Precio     bool `json:"precio"`
}

func (s StepCompletion) AllComplete() bool {
	return s.Basico && s.Estructura && s.Contenido && s.Calidad && s.Precio
}

// Incomplete lists the section keys still missing required fields.
func (s StepCompletion) Incomplete() []string {
	var out []string
	if !s.Basico {
		out = append(out, "basico")
	}
	if !s.Estructura {
		out = append(out, "estructura")
	}
	if !s.Contenido {
		out = append(out, "contenido")
	}
	if !s.Calidad {
		out = append(out, "calidad")
	}
	if !s.Precio {
		out = append(out, "precio")
	}
	return out
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func anyFilled(ss []string) bool {
	for _, s := range ss {
		if filled(s) {
			return true
		}
	}
	return false
}

// ComputeStepCompletion derives the per-section checklist the review step
// shows. Checks mirror the submit checklist: presence only, no format
// validation.
func ComputeStepCompletion(d CourseDraft) StepCompletion {
	dd := d.DescripcionDetallada
	cc := d.CriteriosCalidad
	return StepCompletion{
		Basico: filled(d.Titulo) && filled(d.Categoria) && filled(d.Tema) &&
			filled(d.NivelCurso) && len(d.PublicoObjetivo) > 0,
		Estructura: len(d.EstructuraPersonalizada) > 0,
		Contenido: len(d.Videos) > 0 &&
			(filled(dd.QueAprendera) || filled(dd.Requisitos) ||
				filled(dd.DirigidoA) || filled(dd.Metodologia)),
		Calidad: anyFilled(d.ObjetivosAprendizaje) && len(d.Modalidades) > 0 &&
			(cc.AudioClaro || cc.VideoHD || cc.ContenidoOriginal || cc.CasosPracticos),
		Precio: filled(d.Precio) && filled(d.TipoAcceso) && filled(d.Visibilidad),
	}
}
