package auth

type SignInRequest struct {
	TenantID   int     `json:"tenant_id" form:"tenant_id"`
	EmployeeID string  `json:"employee_id" form:"employee_id"`
	Password   string  `json:"password" form:"password"`
	DeviceID   string  `json:"device_id" form:"device_id"`
	Platform   *string `json:"platform" form:"platform"`
}

type ChallengeRequest struct {
	DeviceID string `json:"device_id" form:"device_id"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
	DeviceID     string `json:"device_id" form:"device_id"`
}
