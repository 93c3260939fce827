package service

import (
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register creates a buyer account, or a seller straight away when the email
// is on the trusted-sellers list.
func (s *AuthService) Register(email, password, fullName string) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.Buyer
	if s.isTrustedSeller(email) {
		role = model.Seller
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) isTrustedSeller(email string) bool {
	for _, trusted := range s.Cfg.Auth.TrustedSellerEmails {
		if strings.EqualFold(trusted, email) {
			return true
		}
	}
	return false
}

// Login verifies credentials and returns a signed token. Lookup and password
// failures collapse into the same error so attackers cannot probe which
// emails exist.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	go s.UserRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// ProfileInput carries the professional-profile form. Validation mirrors the
// form's rules: roleOther is required only for "otro", the collegiate number
// only when collegiated, and both consents are mandatory.
type ProfileInput struct {
	Country              string   `json:"country" binding:"required"`
	Role                 string   `json:"role" binding:"required"`
	RoleOther            string   `json:"roleOther"`
	FormationLevel       string   `json:"formationLevel" binding:"required"`
	Specialty            []string `json:"specialty" binding:"required"`
	ProfessionalStatus   string   `json:"professionalStatus" binding:"required"`
	Collegiated          bool     `json:"collegiated"`
	CollegiateNumber     string   `json:"collegiateNumber"`
	AcceptTerms          bool     `json:"acceptTerms"`
	AcceptResponsibleUse bool     `json:"acceptResponsibleUse"`
}

// Validate returns the field-keyed messages the profile form shows inline.
func (in ProfileInput) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Country) == "" {
		errs["country"] = "El país es obligatorio"
	}
	role := model.ProfessionalRole(in.Role)
	if !role.Valid() {
		errs["role"] = "El rol profesional es obligatorio"
	}
	if role == model.RoleOtro && strings.TrimSpace(in.RoleOther) == "" {
		errs["roleOther"] = "Especifique su profesión"
	}
	if !model.FormationLevel(in.FormationLevel).Valid() {
		errs["formationLevel"] = "El nivel de formación es obligatorio"
	}
	if len(in.Specialty) == 0 {
		errs["specialty"] = "Seleccione al menos una especialidad"
	}
	if len(in.Specialty) > model.MaxSpecialties {
		errs["specialty"] = "Máximo 3 especialidades"
	}
	if !model.ProfessionalStatus(in.ProfessionalStatus).Valid() {
		errs["professionalStatus"] = "La situación profesional es obligatoria"
	}
	if in.Collegiated && strings.TrimSpace(in.CollegiateNumber) == "" {
		errs["collegiateNumber"] = "Indique su número de colegiado"
	}
	if !in.AcceptTerms {
		errs["acceptTerms"] = "Debe aceptar las condiciones"
	}
	if !in.AcceptResponsibleUse {
		errs["acceptResponsibleUse"] = "Debe aceptar el uso responsable"
	}
	return errs
}

// CompleteProfile stores the professional profile and returns the refreshed
// user, now with profile_completed set.
func (s *AuthService) CompleteProfile(userID string, in ProfileInput) (*model.User, error) {
	profile := &model.ProfessionalProfile{
		Country:              in.Country,
		Role:                 model.ProfessionalRole(in.Role),
		RoleOther:            in.RoleOther,
		FormationLevel:       model.FormationLevel(in.FormationLevel),
		Specialty:            model.StringList(in.Specialty),
		ProfessionalStatus:   model.ProfessionalStatus(in.ProfessionalStatus),
		Collegiated:          in.Collegiated,
		CollegiateNumber:     in.CollegiateNumber,
		AcceptTerms:          in.AcceptTerms,
		AcceptResponsibleUse: in.AcceptResponsibleUse,
	}
	if profile.Role != model.RoleOtro {
		profile.RoleOther = ""
	}
	if !profile.Collegiated {
		profile.CollegiateNumber = ""
	}

	if err := s.UserRepo.SaveProfile(userID, profile); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(userID)
}
