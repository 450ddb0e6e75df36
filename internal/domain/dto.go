package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type CustomerDTO struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"companyName"`
	CustomerCode  string    `json:"customerCode"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	Country       string    `json:"country,omitempty"`
	VATNumber     string    `json:"vatNumber,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type PortDTO struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	City    string    `json:"city,omitempty"`
	Country string    `json:"country,omitempty"`
}

type SupplierDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
}

type ServiceDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	DefaultPurchasePrice *float64  `json:"defaultPurchasePrice,omitempty"`
	DefaultSalesPrice    *float64  `json:"defaultSalesPrice,omitempty"`
}

type CaseDTO struct {
	ID                uuid.UUID     `json:"id"`
	CaseNumber        string        `json:"caseNumber"`
	CaseType          CaseType      `json:"caseType"`
	Direction         CaseDirection `json:"direction"`
	Status            CaseStatus    `json:"status"`
	CustomerID        *uuid.UUID    `json:"customerId,omitempty"`
	Customer          *CustomerDTO  `json:"customer,omitempty"`
	CustomerReference string        `json:"customerReference,omitempty"`

	CargoDescription  string   `json:"cargoDescription,omitempty"`
	ContainerType     string   `json:"containerType,omitempty"`
	ContainerQuantity *int     `json:"containerQuantity,omitempty"`
	WeightKg          *float64 `json:"weightKg,omitempty"`
	VolumeCbm         *float64 `json:"volumeCbm,omitempty"`

	LoadingPortID     *uuid.UUID `json:"loadingPortId,omitempty"`
	LoadingPort       *PortDTO   `json:"loadingPort,omitempty"`
	DischargePortID   *uuid.UUID `json:"dischargePortId,omitempty"`
	DischargePort     *PortDTO   `json:"dischargePort,omitempty"`
	LoadingTerminal   string     `json:"loadingTerminal,omitempty"`
	DischargeTerminal string     `json:"dischargeTerminal,omitempty"`
	VesselName        string     `json:"vesselName,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	VoyageNumber      string     `json:"voyageNumber,omitempty"`

	PickupDate          *string `json:"pickupDate,omitempty"`          // YYYY-MM-DD
	DeliveryDate        *string `json:"deliveryDate,omitempty"`        // YYYY-MM-DD
	StandardClosing     *string `json:"standardClosing,omitempty"`     // YYYY-MM-DD
	VWMClosing          *string `json:"vwmClosing,omitempty"`          // YYYY-MM-DD
	CYClosing           *string `json:"cyClosing,omitempty"`           // YYYY-MM-DD
	DockClosingCarrier  *string `json:"dockClosingCarrier,omitempty"`  // YYYY-MM-DD
	DockClosingCustomer *string `json:"dockClosingCustomer,omitempty"` // YYYY-MM-DD
	ValidityFrom        *string `json:"validityFrom,omitempty"`        // YYYY-MM-DD
	ValidityTo          *string `json:"validityTo,omitempty"`          // YYYY-MM-DD

	Incoterms    string `json:"incoterms,omitempty"`
	PaymentTerms string `json:"paymentTerms,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"createdAt"` // ISO 8601
	UpdatedAt    string `json:"updatedAt"` // ISO 8601
}

type CaseFinanceDTO struct {
	ID               uuid.UUID    `json:"id"`
	CaseID           uuid.UUID    `json:"caseId"`
	Quantity         float64      `json:"quantity"`
	ServiceID        *uuid.UUID   `json:"serviceId,omitempty"`
	Service          *ServiceDTO  `json:"service,omitempty"`
	Description      string       `json:"description,omitempty"`
	PurchasePrice    float64      `json:"purchasePrice"`
	PurchaseCurrency Currency     `json:"purchaseCurrency"`
	SupplierID       *uuid.UUID   `json:"supplierId,omitempty"`
	Supplier         *SupplierDTO `json:"supplier,omitempty"`
	SalesPrice       float64      `json:"salesPrice"`
	SalesCurrency    Currency     `json:"salesCurrency"`
	CustomerID       *uuid.UUID   `json:"customerId,omitempty"`
	CreatedAt        string       `json:"createdAt"` // ISO 8601
}

// FinanceLedgerDTO bundles the rows of one case with the derived summary
type FinanceLedgerDTO struct {
	Rows    []CaseFinanceDTO `json:"rows"`
	Summary FinanceSummary   `json:"summary"`
}

type CaseDocumentDTO struct {
	ID           uuid.UUID `json:"id"`
	CaseID       uuid.UUID `json:"caseId"`
	Name         string    `json:"name"`
	DocumentType string    `json:"documentType"`
	HTMLContent  string    `json:"htmlContent,omitempty"`
	CreatedAt    string    `json:"createdAt"` // ISO 8601
}

type DocumentTemplateDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DocumentType string    `json:"documentType"`
	Content      string    `json:"content"`
}

type CaseStatusHistoryDTO struct {
	ID           uuid.UUID   `json:"id"`
	CaseID       uuid.UUID   `json:"caseId"`
	OldStatus    *CaseStatus `json:"oldStatus,omitempty"`
	NewStatus    CaseStatus  `json:"newStatus"`
	ChangedBy    string      `json:"changedBy"`
	ChangeReason string      `json:"changeReason,omitempty"`
	CreatedAt    string      `json:"createdAt"` // ISO 8601
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// Request DTOs

type CreateCustomerRequest struct {
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=200"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"max=50"`
	Address       string `json:"address,omitempty" validate:"max=500"`
	City          string `json:"city,omitempty" validate:"max=100"`
	PostalCode    string `json:"postalCode,omitempty" validate:"max=20"`
	Country       string `json:"country,omitempty" validate:"max=100"`
	VATNumber     string `json:"vatNumber,omitempty" validate:"max=50"`
	Notes         string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=200"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"max=50"`
	Address       string `json:"address,omitempty" validate:"max=500"`
	City          string `json:"city,omitempty" validate:"max=100"`
	PostalCode    string `json:"postalCode,omitempty" validate:"max=20"`
	Country       string `json:"country,omitempty" validate:"max=100"`
	VATNumber     string `json:"vatNumber,omitempty" validate:"max=50"`
	Notes         string `json:"notes,omitempty"`
}

type CreatePortRequest struct {
	Code    string `json:"code" validate:"required,max=10"`
	Name    string `json:"name" validate:"required,max=200"`
	City    string `json:"city,omitempty" validate:"max=100"`
	Country string `json:"country,omitempty" validate:"max=100"`
}

// AdhocPortRequest creates a port from free text typed into the route form
type AdhocPortRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=200"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"max=50"`
	Country       string `json:"country,omitempty" validate:"max=100"`
}

type CreateServiceRequest struct {
	Name                 string   `json:"name" validate:"required,max=200"`
	Description          string   `json:"description,omitempty"`
	DefaultPurchasePrice *float64 `json:"defaultPurchasePrice,omitempty" validate:"omitempty,gte=0"`
	DefaultSalesPrice    *float64 `json:"defaultSalesPrice,omitempty" validate:"omitempty,gte=0"`
}

type CreateCaseRequest struct {
	CaseType   CaseType      `json:"caseType,omitempty"`
	Direction  CaseDirection `json:"direction,omitempty"`
	CustomerID *uuid.UUID    `json:"customerId,omitempty"`
}

// UpdateCaseRequest carries a partial case update. Only non-nil fields are
// applied, so the record view can commit one field per round trip. Status
// and case number are not updatable through this request.
type UpdateCaseRequest struct {
	CaseType          *CaseType      `json:"caseType,omitempty"`
	Direction         *CaseDirection `json:"direction,omitempty"`
	CustomerID        *uuid.UUID     `json:"customerId,omitempty"`
	CustomerReference *string        `json:"customerReference,omitempty" validate:"omitempty,max=100"`

	CargoDescription  *string  `json:"cargoDescription,omitempty"`
	ContainerType     *string  `json:"containerType,omitempty" validate:"omitempty,max=50"`
	ContainerQuantity *int     `json:"containerQuantity,omitempty" validate:"omitempty,gte=0"`
	WeightKg          *float64 `json:"weightKg,omitempty" validate:"omitempty,gte=0"`
	VolumeCbm         *float64 `json:"volumeCbm,omitempty" validate:"omitempty,gte=0"`

	LoadingPortID     *uuid.UUID `json:"loadingPortId,omitempty"`
	DischargePortID   *uuid.UUID `json:"dischargePortId,omitempty"`
	LoadingTerminal   *string    `json:"loadingTerminal,omitempty" validate:"omitempty,max=200"`
	DischargeTerminal *string    `json:"dischargeTerminal,omitempty" validate:"omitempty,max=200"`
	VesselName        *string    `json:"vesselName,omitempty" validate:"omitempty,max=200"`
	Carrier           *string    `json:"carrier,omitempty" validate:"omitempty,max=200"`
	VoyageNumber      *string    `json:"voyageNumber,omitempty" validate:"omitempty,max=50"`

	PickupDate          *string `json:"pickupDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate        *string `json:"deliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StandardClosing     *string `json:"standardClosing,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VWMClosing          *string `json:"vwmClosing,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CYClosing           *string `json:"cyClosing,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DockClosingCarrier  *string `json:"dockClosingCarrier,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DockClosingCustomer *string `json:"dockClosingCustomer,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidityFrom        *string `json:"validityFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidityTo          *string `json:"validityTo,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Incoterms    *string `json:"incoterms,omitempty" validate:"omitempty,max=10"`
	PaymentTerms *string `json:"paymentTerms,omitempty" validate:"omitempty,max=200"`
	Notes        *string `json:"notes,omitempty"`
}

type UpdateCaseStatusRequest struct {
	Status CaseStatus `json:"status" validate:"required"`
	Reason string     `json:"reason,omitempty" validate:"max=500"`
}

type CreateFinanceRowRequest struct {
	Quantity         *float64   `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	ServiceID        *uuid.UUID `json:"serviceId,omitempty"`
	Description      string     `json:"description,omitempty"`
	PurchasePrice    *float64   `json:"purchasePrice,omitempty" validate:"omitempty,gte=0"`
	PurchaseCurrency Currency   `json:"purchaseCurrency,omitempty"`
	SupplierID       *uuid.UUID `json:"supplierId,omitempty"`
	SalesPrice       *float64   `json:"salesPrice,omitempty" validate:"omitempty,gte=0"`
	SalesCurrency    Currency   `json:"salesCurrency,omitempty"`
	CustomerID       *uuid.UUID `json:"customerId,omitempty"`
}

// UpdateFinanceRowRequest is a partial update; only non-nil fields apply
type UpdateFinanceRowRequest struct {
	Quantity         *float64   `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	ServiceID        *uuid.UUID `json:"serviceId,omitempty"`
	Description      *string    `json:"description,omitempty"`
	PurchasePrice    *float64   `json:"purchasePrice,omitempty" validate:"omitempty,gte=0"`
	PurchaseCurrency *Currency  `json:"purchaseCurrency,omitempty"`
	SupplierID       *uuid.UUID `json:"supplierId,omitempty"`
	SalesPrice       *float64   `json:"salesPrice,omitempty" validate:"omitempty,gte=0"`
	SalesCurrency    *Currency  `json:"salesCurrency,omitempty"`
	CustomerID       *uuid.UUID `json:"customerId,omitempty"`
}

type CreateDocumentRequest struct {
	TemplateID   *uuid.UUID `json:"templateId,omitempty"`
	Name         string     `json:"name" validate:"required,max=200"`
	DocumentType string     `json:"documentType,omitempty" validate:"max=50"`
	Content      string     `json:"content,omitempty"`
}

// Workspace panel requests

type OpenCasePanelRequest struct {
	CaseID uuid.UUID `json:"caseId" validate:"required"`
}

type OpenCustomerPanelRequest struct {
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	IsEdit     bool       `json:"isEdit,omitempty"`
}

type OpenDocumentPanelRequest struct {
	CaseID uuid.UUID `json:"caseId" validate:"required"`
}

type SetPanelMinimizedRequest struct {
	Minimized bool `json:"minimized"`
}
