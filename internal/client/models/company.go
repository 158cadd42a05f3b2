package models

type Company struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	CreatedAt     string          `json:"created_at"`
	IsActive      bool            `json:"is_active"`
	PhoneVerified bool            `json:"phone_verified"`
	Profile       *CompanyProfile `json:"profile,omitempty"`
}

// CompanyProfile carries the tenant's presentation settings. The list
// endpoint returns the caller's single profile.
type CompanyProfile struct {
	ID                int64   `json:"id"`
	Company           int64   `json:"company"`
	CompanyName       string  `json:"company_name"`
	CompanyCode       string  `json:"company_code"`
	CompanyEmail      string  `json:"company_email"`
	CompanyPhone      string  `json:"company_phone"`
	CompanyAddress    string  `json:"company_address"`
	LogoURL           *string `json:"logo_url"`
	ReturnPolicy      string  `json:"return_policy"`
	PaymentPolicy     string  `json:"payment_policy"`
	Language          string  `json:"language"`
	NavbarMessage     string  `json:"navbar_message"`
	PrimaryCurrency   string  `json:"primary_currency"`
	SecondaryCurrency string  `json:"secondary_currency"`
	SecondaryPerUSD   Amount  `json:"secondary_per_usd"`
	PriceDisplayMode  string  `json:"price_display_mode"`
	ProductsLabel     string  `json:"products_label"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// AppConfig is the public, unauthenticated application config.
type AppConfig struct {
	APKDownloadURL string `json:"apk_download_url"`
}
