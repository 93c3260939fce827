package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func slicePtr(ss ...string) *[]string { return &ss }

func boolPtr(b bool) *bool { return &b }

// completeDraft builds a draft that passes every section check.
func completeDraft() CourseDraft {
	d := NewCourseDraft()
	d.Titulo = "Electrocardiografía básica"
	d.Categoria = "Cardiología"
	d.Tema = "ECG"
	d.NivelCurso = "basico"
	d.PublicoObjetivo = []string{"Medicina"}
	d.EstructuraPersonalizada = []string{"Introducción", "Casos clínicos"}
	d.Videos = []VideoAsset{{ID: "v1", Titulo: "Derivaciones"}}
	d.DescripcionDetallada.QueAprendera = "Interpretar un ECG de 12 derivaciones"
	d.ObjetivosAprendizaje = []string{"Reconocer ritmos"}
	d.Modalidades = []string{"video"}
	d.CriteriosCalidad.AudioClaro = true
	d.Precio = "49.90"
	d.TipoAcceso = "pago-unico"
	d.Visibilidad = "publico"
	return d
}

func TestNewCourseDraftFullyDefined(t *testing.T) {
	d := NewCourseDraft()

	assert.NotNil(t, d.PublicoObjetivo)
	assert.NotNil(t, d.EstructuraPersonalizada)
	assert.NotNil(t, d.Videos)
	assert.NotNil(t, d.Modalidades)
	assert.NotNil(t, d.Bibliografia)
	// The objectives list starts with one blank input row.
	require.Len(t, d.ObjetivosAprendizaje, 1)
	assert.Equal(t, "", d.ObjetivosAprendizaje[0])
	assert.Nil(t, d.Presentacion)
}

func TestApplyMergesOnlyProvidedFields(t *testing.T) {
	d := NewCourseDraft()
	d.Titulo = "Original"
	d.Categoria = "Cardiología"

	merged := DraftUpdate{
		Titulo: strPtr("Nuevo título"),
		Precio: strPtr("19.90"),
	}.Apply(d)

	assert.Equal(t, "Nuevo título", merged.Titulo)
	assert.Equal(t, "19.90", merged.Precio)
	// Absent fields keep their value.
	assert.Equal(t, "Cardiología", merged.Categoria)
	assert.Equal(t, []string{""}, merged.ObjetivosAprendizaje)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	d := NewCourseDraft()
	d.Titulo = "Original"

	_ = DraftUpdate{Titulo: strPtr("Cambiado")}.Apply(d)

	assert.Equal(t, "Original", d.Titulo)
}

func TestApplyReplacesSlicesWholesale(t *testing.T) {
	d := NewCourseDraft()
	d.PublicoObjetivo = []string{"Medicina", "Enfermería"}

	merged := DraftUpdate{PublicoObjetivo: slicePtr("Fisioterapia")}.Apply(d)

	assert.Equal(t, []string{"Fisioterapia"}, merged.PublicoObjetivo)

	// An explicit empty slice clears the field, unlike an absent one.
	cleared := DraftUpdate{PublicoObjetivo: &[]string{}}.Apply(merged)
	assert.Empty(t, cleared.PublicoObjetivo)
}

func TestApplyNestedGroups(t *testing.T) {
	d := NewCourseDraft()

	merged := DraftUpdate{
		DescripcionDetallada: &DetailedDescription{QueAprendera: "Bases del ECG"},
		CriteriosCalidad:     &QualityCriteria{VideoHD: true},
		UsarPlantilla:        boolPtr(true),
	}.Apply(d)

	assert.Equal(t, "Bases del ECG", merged.DescripcionDetallada.QueAprendera)
	assert.True(t, merged.CriteriosCalidad.VideoHD)
	assert.True(t, merged.UsarPlantilla)
}

// Applying updates one at a time must land on the same state as applying
// them in one request.
func TestApplyFoldEquivalence(t *testing.T) {
	updates := []DraftUpdate{
		{Titulo: strPtr("Curso"), Categoria: strPtr("Cardiología")},
		{Tema: strPtr("ECG"), NivelCurso: strPtr("basico")},
		{Precio: strPtr("49.90"), TipoAcceso: strPtr("pago-unico")},
		{Titulo: strPtr("Curso revisado")},
	}

	folded := NewCourseDraft()
	for _, u := range updates {
		folded = u.Apply(folded)
	}

	combined := DraftUpdate{
		Titulo:     strPtr("Curso revisado"),
		Categoria:  strPtr("Cardiología"),
		Tema:       strPtr("ECG"),
		NivelCurso: strPtr("basico"),
		Precio:     strPtr("49.90"),
		TipoAcceso: strPtr("pago-unico"),
	}.Apply(NewCourseDraft())

	assert.Equal(t, combined, folded)
}

func TestComputeStepCompletionEmptyDraft(t *testing.T) {
	c := ComputeStepCompletion(NewCourseDraft())

	assert.False(t, c.Basico)
	assert.False(t, c.Estructura)
	assert.False(t, c.Contenido)
	assert.False(t, c.Calidad)
	assert.False(t, c.Precio)
	assert.False(t, c.AllComplete())
	assert.Equal(t, []string{"basico", "estructura", "contenido", "calidad", "precio"}, c.Incomplete())
}

func TestComputeStepCompletionCompleteDraft(t *testing.T) {
	c := ComputeStepCompletion(completeDraft())

	assert.True(t, c.AllComplete())
	assert.Empty(t, c.Incomplete())
}

func TestComputeStepCompletionSectionChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CourseDraft)
		check  func(StepCompletion) bool
	}{
		{"whitespace title does not count", func(d *CourseDraft) { d.Titulo = "   " }, func(c StepCompletion) bool { return !c.Basico }},
		{"empty audience fails basico", func(d *CourseDraft) { d.PublicoObjetivo = nil }, func(c StepCompletion) bool { return !c.Basico }},
		{"no sections fails estructura", func(d *CourseDraft) { d.EstructuraPersonalizada = nil }, func(c StepCompletion) bool { return !c.Estructura }},
		{"videos without description fails contenido", func(d *CourseDraft) { d.DescripcionDetallada = DetailedDescription{} }, func(c StepCompletion) bool { return !c.Contenido }},
		{"any detail field passes contenido", func(d *CourseDraft) {
			d.DescripcionDetallada = DetailedDescription{Metodologia: "Casos guiados"}
		}, func(c StepCompletion) bool { return c.Contenido }},
		{"blank objectives fail calidad", func(d *CourseDraft) { d.ObjetivosAprendizaje = []string{"", "  "} }, func(c StepCompletion) bool { return !c.Calidad }},
		{"no quality criteria fails calidad", func(d *CourseDraft) { d.CriteriosCalidad = QualityCriteria{} }, func(c StepCompletion) bool { return !c.Calidad }},
		{"missing visibility fails precio", func(d *CourseDraft) { d.Visibilidad = "" }, func(c StepCompletion) bool { return !c.Precio }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(&d)
			assert.True(t, tt.check(ComputeStepCompletion(d)))
		})
	}
}

// Completion is a pure function of the draft.
func TestComputeStepCompletionDeterministic(t *testing.T) {
	d := completeDraft()
	first := ComputeStepCompletion(d)
	second := ComputeStepCompletion(d)
	assert.Equal(t, first, second)
}

func TestDraftJSONRoundTrip(t *testing.T) {
	d := completeDraft()
	d.Presentacion = &FileRef{URL: "/uploads/p.pdf", Nombre: "p.pdf", Size: 1024, ContentType: "application/pdf"}
	d.Bibliografia = []BibliographyReference{{ID: "b1", Tipo: "Guía clínica", Referencia: "ESC 2023", EnlaceDOI: "https://doi.org/x"}}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var back CourseDraft
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.Equal(t, d, back)
	assert.Equal(t, ComputeStepCompletion(d), ComputeStepCompletion(back))
}
