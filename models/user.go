package models

import "time"

// ============================================================================
// LANDLORD ACCOUNT MODEL
// ============================================================================

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	TOTPSecret   string    `json:"-"` // Never expose in JSON
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

// ============================================================================
// PASSWORD & 2FA
// ============================================================================

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// ============================================================================
// TENANT PORTAL
// ============================================================================

type PortalLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	DOB   string `json:"dob" binding:"required"`
}

// PortalDashboard is the read-only view a logged-in tenant gets of their own
// unit: the tenant record with its ledger, plus building/unit context.
type PortalDashboard struct {
	Tenant       Tenant `json:"tenant"`
	BuildingID   string `json:"buildingId"`
	BuildingName string `json:"buildingName"`
	Address      string `json:"address,omitempty"`
	UnitID       string `json:"unitId"`
	UnitName     string `json:"unitName"`
	Floor        string `json:"floor,omitempty"`
	Details      string `json:"details,omitempty"`
}
