package util

import "errors"

// Sentinel errors. User-facing messages stay in Spanish to match the
// platform's audience.
var (
	ErrEmailRegistered       = errors.New("Email ya registrado")
	ErrInvalidCredentials    = errors.New("Credenciales incorrectas")
	ErrUserNotFound          = errors.New("Usuario no encontrado")
	ErrCourseNotFound        = errors.New("Curso no encontrado")
	ErrSessionNotFound       = errors.New("Sesión de creación no encontrada")
	ErrVideoNotFound         = errors.New("Vídeo no encontrado")
	ErrSubmitInFlight        = errors.New("El envío ya está en curso")
	ErrDraftIncomplete       = errors.New("Hay secciones incompletas")
	ErrInvalidOTP            = errors.New("Código incorrecto o caducado")
	ErrCourseNotPurchased    = errors.New("Debes comprar el curso para valorarlo")
	ErrAlreadyPurchased      = errors.New("Ya has comprado este curso")
	ErrOrderNotFound         = errors.New("Pedido no encontrado")
	ErrNotCourseOwner        = errors.New("No tienes permiso para gestionar este curso")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrAlreadyFavorite       = errors.New("El curso ya está en favoritos")
	ErrAlreadyRated          = errors.New("Ya has valorado este curso")
	ErrRatingNotFound        = errors.New("No has valorado este curso")
	ErrSellerRequestExists   = errors.New("Ya existe una solicitud pendiente")
	ErrSellerRequestNotFound = errors.New("Solicitud no encontrada")
)
