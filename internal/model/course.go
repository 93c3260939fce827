package model

// CourseStatus follows the review pipeline a submitted course moves through.
type CourseStatus string

const (
	CourseDraftStatus CourseStatus = "draft"
	CourseInReview    CourseStatus = "in_review"
	CoursePublished   CourseStatus = "published"
	CourseRejected    CourseStatus = "rejected"
)

type AccessType string

const (
	AccessPagoUnico   AccessType = "pago-unico"
	AccessSuscripcion AccessType = "suscripcion"
	AccessMixto       AccessType = "mixto"
)

func (a AccessType) Valid() bool {
	switch a {
	case AccessPagoUnico, AccessSuscripcion, AccessMixto:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublico Visibility = "publico"
	VisibilityPrivado Visibility = "privado"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublico || v == VisibilityPrivado
}

type CourseLevel string

const (
	LevelBasico     CourseLevel = "basico"
	LevelIntermedio CourseLevel = "intermedio"
	LevelAvanzado   CourseLevel = "avanzado"
)

func (l CourseLevel) Valid() bool {
	return l == LevelBasico || l == LevelIntermedio || l == LevelAvanzado
}

// swagger:model Course
type Course struct {
	UUIDBase
	Titulo            string               `gorm:"size:200;not null" json:"titulo"`
	Subtitulo         string               `gorm:"size:255" json:"subtitulo"`
	Categoria         string               `gorm:"size:100" json:"categoria"`
	Tema              string               `gorm:"size:100" json:"tema"`
	Subtema           string               `gorm:"size:100" json:"subtema"`
	Nivel             CourseLevel          `gorm:"size:20" json:"nivel"`
	PublicoObjetivo   StringList           `gorm:"type:json" json:"publicoObjetivo"`
	DescripcionCorta  string               `gorm:"type:text" json:"descripcionCorta"`
	QueAprendera      string               `gorm:"type:text" json:"queAprendera"`
	Requisitos        string               `gorm:"type:text" json:"requisitos"`
	DirigidoA         string               `gorm:"type:text" json:"dirigidoA"`
	Metodologia       string               `gorm:"type:text" json:"metodologia"`
	Objetivos         StringList           `gorm:"type:json" json:"objetivosAprendizaje"`
	Modalidades       StringList           `gorm:"type:json" json:"modalidades"`
	PresentacionURL   string               `gorm:"size:500" json:"presentacionUrl"`
	Precio            string               `gorm:"size:20" json:"precio"`
	TipoAcceso        AccessType           `gorm:"size:20" json:"tipoAcceso"`
	Visibilidad       Visibility           `gorm:"size:20" json:"visibilidad"`
	Status            CourseStatus         `gorm:"size:20;default:'draft'" json:"status"`
	IsProtected       bool                 `gorm:"default:true" json:"is_protected"`
	RequiresProfile   bool                 `gorm:"default:true;column:requires_professional_profile" json:"requires_professional_profile"`
	SellerID          string               `gorm:"size:36;index;not null" json:"seller_id"`
	Seller            *User                `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Sections          []CourseSection      `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
	Videos            []CourseVideo        `gorm:"foreignKey:CourseID" json:"videos,omitempty"`
	Bibliography      []CourseBibliography `gorm:"foreignKey:CourseID" json:"bibliografia,omitempty"`
	RatingAvg         float64              `gorm:"default:0" json:"rating_avg"`
	RatingCount       int64                `gorm:"default:0" json:"rating_count"`
	AudioClaro        bool                 `gorm:"default:false" json:"audioClaro"`
	VideoHD           bool                 `gorm:"default:false" json:"videoHD"`
	ContenidoOriginal bool                 `gorm:"default:false" json:"contenidoOriginal"`
	CasosPracticos    bool                 `gorm:"default:false" json:"casosPracticos"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseSection
type CourseSection struct {
	UUIDBase
	CourseID string `gorm:"size:36;index;not null" json:"-"`
	Nombre   string `gorm:"size:200;not null" json:"nombre"`
	Orden    int    `gorm:"default:0" json:"orden"`
}

func (CourseSection) TableName() string {
	return "course_sections"
}

// swagger:model CourseVideo
type CourseVideo struct {
	UUIDBase
	CourseID    string `gorm:"size:36;index;not null" json:"-"`
	Seccion     string `gorm:"size:200" json:"seccion"`
	Titulo      string `gorm:"size:200" json:"titulo"`
	FileURL     string `gorm:"size:500" json:"fileUrl"`
	Duracion    string `gorm:"size:50" json:"duracion"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Orden       int    `gorm:"default:0" json:"orden"`
}

func (CourseVideo) TableName() string {
	return "course_videos"
}

type BibliographyType string

const (
	BiblioGuiaClinica BibliographyType = "Guía clínica"
	BiblioArticulo    BibliographyType = "Artículo científico"
	BiblioRevision    BibliographyType = "Revisión sistemática / Metaanálisis"
	BiblioLibro       BibliographyType = "Libro de texto"
	BiblioCasoClinico BibliographyType = "Caso clínico publicado"
)

func (b BibliographyType) Valid() bool {
	switch b {
	case BiblioGuiaClinica, BiblioArticulo, BiblioRevision, BiblioLibro, BiblioCasoClinico:
		return true
	}
	return false
}

// swagger:model CourseBibliography
type CourseBibliography struct {
	UUIDBase
	CourseID   string           `gorm:"size:36;index;not null" json:"-"`
	Tipo       BibliographyType `gorm:"size:60" json:"tipo"`
	Referencia string           `gorm:"type:text" json:"referencia"`
	EnlaceDOI  string           `gorm:"size:300" json:"enlaceDOI"`
}

func (CourseBibliography) TableName() string {
	return "course_bibliography"
}
