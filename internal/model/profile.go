package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ProfessionalRole is the healthcare profession declared by the user.
type ProfessionalRole string

const (
	RoleMedico       ProfessionalRole = "medico"
	RoleEnfermeria   ProfessionalRole = "enfermeria"
	RoleFisioterapia ProfessionalRole = "fisioterapia"
	RolePsicologia   ProfessionalRole = "psicologia"
	RoleFarmacia     ProfessionalRole = "farmacia"
	RoleBiologia     ProfessionalRole = "biologia"
	RoleNutricion    ProfessionalRole = "nutricion"
	RoleOdontologia  ProfessionalRole = "odontologia"
	RoleOtro         ProfessionalRole = "otro"
)

func (r ProfessionalRole) Valid() bool {
	switch r {
	case RoleMedico, RoleEnfermeria, RoleFisioterapia, RolePsicologia,
		RoleFarmacia, RoleBiologia, RoleNutricion, RoleOdontologia, RoleOtro:
		return true
	}
	return false
}

type FormationLevel string

const (
	FormationGrado        FormationLevel = "grado"
	FormationEspecialista FormationLevel = "especialista"
	FormationMaster       FormationLevel = "master"
	FormationDoctorado    FormationLevel = "doctorado"
)

func (f FormationLevel) Valid() bool {
	switch f {
	case FormationGrado, FormationEspecialista, FormationMaster, FormationDoctorado:
		return true
	}
	return false
}

type ProfessionalStatus string

const (
	StatusEjerciendo   ProfessionalStatus = "ejerciendo"
	StatusResidente    ProfessionalStatus = "residente"
	StatusInvestigador ProfessionalStatus = "investigador"
	StatusDocente      ProfessionalStatus = "docente"
	StatusNoEjerciendo ProfessionalStatus = "no_ejerciendo"
)

func (s ProfessionalStatus) Valid() bool {
	switch s {
	case StatusEjerciendo, StatusResidente, StatusInvestigador, StatusDocente, StatusNoEjerciendo:
		return true
	}
	return false
}

// StringList stores a string slice as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}
	return json.Unmarshal(raw, l)
}

// MaxSpecialties caps how many specialties a profile may declare.
const MaxSpecialties = 3

// swagger:model ProfessionalProfile
type ProfessionalProfile struct {
	UUIDBase
	UserID               string             `gorm:"size:36;uniqueIndex;not null" json:"-"`
	Country              string             `gorm:"size:100;not null" json:"country"`
	Role                 ProfessionalRole   `gorm:"size:30;not null" json:"role"`
	RoleOther            string             `gorm:"size:100" json:"roleOther,omitempty"`
	FormationLevel       FormationLevel     `gorm:"size:30;not null" json:"formationLevel"`
	Specialty            StringList         `gorm:"type:json" json:"specialty"`
	ProfessionalStatus   ProfessionalStatus `gorm:"size:30;not null" json:"professionalStatus"`
	Collegiated          bool               `gorm:"default:false" json:"collegiated"`
	CollegiateNumber     string             `gorm:"size:50" json:"collegiateNumber,omitempty"`
	AcceptTerms          bool               `gorm:"not null" json:"acceptTerms"`
	AcceptResponsibleUse bool               `gorm:"not null" json:"acceptResponsibleUse"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
