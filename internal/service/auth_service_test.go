package service

import (
	"testing"
	"time"

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

func testUserRepo(t *testing.T) *repository.UserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.ProfessionalProfile{}))
	return repository.NewUserRepository(db)
}

func testAuthService(t *testing.T, trusted ...string) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret-unit-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Auth.TrustedSellerEmails = trusted
	return NewAuthService(testUserRepo(t), cfg)
}

func TestRegisterCreatesBuyer(t *testing.T) {
	svc := testAuthService(t)

	user, err := svc.Register("ana@example.com", "contraseña-larga", "Ana Ruiz")
	require.NoError(t, err)
	assert.Equal(t, model.Buyer, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.ProfileCompleted)
	assert.NotEmpty(t, user.ID)
	// Only the hash is stored.
	assert.NotEqual(t, "contraseña-larga", user.PasswordHash)
}

func TestRegisterTrustedEmailBecomesSeller(t *testing.T) {
	svc := testAuthService(t, "Doc@Clinic.example")

	user, err := svc.Register("doc@clinic.example", "contraseña-larga", "Dra. Vidal")
	require.NoError(t, err)
	assert.Equal(t, model.Seller, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Register("ana@example.com", "contraseña-larga", "Ana")
	require.NoError(t, err)

	_, err = svc.Register("ana@example.com", "otra-contraseña", "Ana 2")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := testAuthService(t)
	registered, err := svc.Register("ana@example.com", "contraseña-larga", "Ana")
	require.NoError(t, err)

	token, err := svc.Login("ana@example.com", "contraseña-larga")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, model.Buyer, claims.Role)
	assert.Equal(t, "ana@example.com", claims.Email)
}

// Bad email and bad password are indistinguishable to the caller.
func TestLoginFailuresCollapse(t *testing.T) {
	svc := testAuthService(t)
	_, err := svc.Register("ana@example.com", "contraseña-larga", "Ana")
	require.NoError(t, err)

	_, errUnknown := svc.Login("nadie@example.com", "lo-que-sea")
	_, errWrongPass := svc.Login("ana@example.com", "incorrecta")

	assert.ErrorIs(t, errUnknown, util.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, util.ErrInvalidCredentials)
}

func validProfileInput() ProfileInput {
	return ProfileInput{
		Country:              "España",
		Role:                 "medico",
		FormationLevel:       "especialista",
		Specialty:            []string{"Cardiología"},
		ProfessionalStatus:   "ejerciendo",
		Collegiated:          true,
		CollegiateNumber:     "282812345",
		AcceptTerms:          true,
		AcceptResponsibleUse: true,
	}
}

func TestProfileInputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		field  string
	}{
		{"missing country", func(in *ProfileInput) { in.Country = " " }, "country"},
		{"unknown role", func(in *ProfileInput) { in.Role = "astronauta" }, "role"},
		{"otro without detail", func(in *ProfileInput) { in.Role = "otro"; in.RoleOther = "" }, "roleOther"},
		{"too many specialties", func(in *ProfileInput) {
			in.Specialty = []string{"a", "b", "c", "d"}
		}, "specialty"},
		{"collegiated without number", func(in *ProfileInput) { in.CollegiateNumber = "" }, "collegiateNumber"},
		{"terms not accepted", func(in *ProfileInput) { in.AcceptTerms = false }, "acceptTerms"},
		{"responsible use not accepted", func(in *ProfileInput) { in.AcceptResponsibleUse = false }, "acceptResponsibleUse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProfileInput()
			tt.mutate(&in)
			errs := in.Validate()
			assert.Contains(t, errs, tt.field)
		})
	}

	assert.Empty(t, validProfileInput().Validate())
}

func TestCompleteProfileSetsFlag(t *testing.T) {
	svc := testAuthService(t)
	user, err := svc.Register("ana@example.com", "contraseña-larga", "Ana")
	require.NoError(t, err)

	updated, err := svc.CompleteProfile(user.ID, validProfileInput())
	require.NoError(t, err)
	assert.True(t, updated.ProfileCompleted)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, model.RoleMedico, updated.Profile.Role)
}

func TestCompleteProfileClearsConditionalFields(t *testing.T) {
	svc := testAuthService(t)
	user, err := svc.Register("ana@example.com", "contraseña-larga", "Ana")
	require.NoError(t, err)

	in := validProfileInput()
	in.RoleOther = "Residuo de un intento anterior"
	in.Collegiated = false
	in.CollegiateNumber = "no-aplica"

	updated, err := svc.CompleteProfile(user.ID, in)
	require.NoError(t, err)
	assert.Empty(t, updated.Profile.RoleOther)
	assert.Empty(t, updated.Profile.CollegiateNumber)
}
