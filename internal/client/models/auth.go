package models

// TokenPair is the login/refresh response. Refresh may be empty on refresh
// responses: the backend is not required to rotate the refresh token, and
// an absent value means "keep the one you have".
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterCompanyRequest is the payload for /api/register-company/.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}
