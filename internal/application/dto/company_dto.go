package dto

import "time"

// CreateCompanyRequest input to create a company master row.
type CreateCompanyRequest struct {
	CompanyCode string `json:"company_code" validate:"required,min=1,max=50"`
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	CompanyType string `json:"company_type" validate:"required"`
	BusinessNo  string `json:"business_no"`
	CEOName     string `json:"ceo_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// UpdateCompanyRequest partial update; nil fields are left unchanged.
type UpdateCompanyRequest struct {
	CompanyName *string `json:"company_name" validate:"omitempty,min=1,max=200"`
	CompanyType *string `json:"company_type"`
	BusinessNo  *string `json:"business_no"`
	CEOName     *string `json:"ceo_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// CompanyResponse company output.
type CompanyResponse struct {
	ID          string    `json:"id"`
	CompanyCode string    `json:"company_code"`
	CompanyName string    `json:"company_name"`
	CompanyType string    `json:"company_type"`
	BusinessNo  string    `json:"business_no"`
	CEOName     string    `json:"ceo_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	UseYN       string    `json:"use_yn"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyListResponse paginated company list.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
