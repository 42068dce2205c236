package entity

import "time"

// Company types (거래처 구분).
const (
	CompanyTypeCustomer = "customer"
	CompanyTypeSupplier = "supplier"
	CompanyTypePartner  = "partner"
)

// Company is a customer/supplier/partner master row.
type Company struct {
	ID          string
	CompanyCode string // unique business key
	CompanyName string
	CompanyType string
	BusinessNo  string // 사업자등록번호, ###-##-#####
	CEOName     string
	Phone       string
	Email       string
	Address     string
	UseYN       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
