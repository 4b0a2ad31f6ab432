package gateway

import "github.com/shopspring/decimal"

// AuthResponse is the payload of POST /auth/login.
type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"rol"`
	Name  string `json:"nombre"`
	ID    int64  `json:"id"`
}

type loginRequest struct {
	Email    string `json:"correoElectronico"`
	Password string `json:"contrasena"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	FullName string `json:"nombreCompleto"`
	Email    string `json:"correoElectronico"`
	Phone    string `json:"movil"`
	Password string `json:"contrasena"`
	UserType string `json:"tipoUsuario"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type forgotPasswordRequest struct {
	Email  string `json:"email"`
	Method string `json:"method"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// RecoveryMethods lists the password-recovery channels available for an
// account, as reported by POST /auth/check-recovery-methods.
type RecoveryMethods struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// CheckoutRequest is the payload of POST /ordenes/checkout. It is built fresh
// per attempt as a projection of the cart, never from a live cart reference.
type CheckoutRequest struct {
	BuyerID int64          `json:"usuarioId"`
	Items   []CheckoutItem `json:"items"`
}

type CheckoutItem struct {
	ProductID string `json:"seguroId"`
	Quantity  int    `json:"cantidad"`
}

// Order is one row of the administrative order listing (GET /ordenes).
type Order struct {
	ID       int64           `json:"id"`
	BuyerID  int64           `json:"usuarioId"`
	Buyer    string          `json:"usuarioNombre"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"estado"`
	PlacedAt string          `json:"fechaCreacion"`
}

// DataSubjectRequest is one row of the GDPR request listing (GET /derechos/todas).
type DataSubjectRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"usuarioId"`
	Type        string `json:"tipo"`
	Status      string `json:"estado"`
	RequestedAt string `json:"fechaSolicitud"`
}

// Claim is one row of the claims listing (GET /siniestros).
type Claim struct {
	ID          int64  `json:"id"`
	PolicyID    string `json:"polizaId"`
	Description string `json:"descripcion"`
	Status      string `json:"estado"`
	ReportedAt  string `json:"fechaReporte"`
}
