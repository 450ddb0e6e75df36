package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so inserts behave the same on
// postgres and on the sqlite databases used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CaseType distinguishes priced quotations from confirmed bookings
type CaseType string

const (
	CaseTypeQuotation CaseType = "quotation"
	CaseTypeBooking   CaseType = "booking"
)

// IsValid checks if the case type is valid
func (t CaseType) IsValid() bool {
	switch t {
	case CaseTypeQuotation, CaseTypeBooking:
		return true
	}
	return false
}

// CaseDirection represents the trade direction of a shipment
type CaseDirection string

const (
	DirectionImport     CaseDirection = "import"
	DirectionExport     CaseDirection = "export"
	DirectionCrossTrade CaseDirection = "cross_trade"
)

// IsValid checks if the direction is valid
func (d CaseDirection) IsValid() bool {
	switch d {
	case DirectionImport, DirectionExport, DirectionCrossTrade:
		return true
	}
	return false
}

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusDraft     CaseStatus = "draft"
	CaseStatusActive    CaseStatus = "active"
	CaseStatusCompleted CaseStatus = "completed"
	CaseStatusCancelled CaseStatus = "cancelled"
	CaseStatusOnHold    CaseStatus = "on_hold"
	CaseStatusArchived  CaseStatus = "archived"
)

// IsValid checks if the status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusDraft, CaseStatusActive, CaseStatusCompleted,
		CaseStatusCancelled, CaseStatusOnHold, CaseStatusArchived:
		return true
	}
	return false
}

// Currency codes accepted on finance rows
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
	CurrencySGD Currency = "SGD"
	CurrencyAED Currency = "AED"
)

// IsValid checks if the currency is one of the accepted codes
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyJPY,
		CurrencyCNY, CurrencySGD, CurrencyAED:
		return true
	}
	return false
}

// ContainerTypes lists the equipment types offered on the goods form
var ContainerTypes = []string{
	"20ft Standard",
	"40ft Standard",
	"40ft High Cube",
	"20ft Reefer",
	"40ft Reefer",
	"20ft Open Top",
	"40ft Open Top",
	"20ft Flat Rack",
	"40ft Flat Rack",
	"LCL",
}

// Incoterms lists the supported delivery terms
var Incoterms = []string{"EXW", "FCA", "FAS", "FOB", "CFR", "CIF"}

// Customer represents a shipping customer (the paying party on a case)
type Customer struct {
	BaseModel
	CompanyName   string `gorm:"type:varchar(200);not null;index;column:company_name"`
	CustomerCode  string `gorm:"type:varchar(10);not null;uniqueIndex;column:customer_code"`
	ContactPerson string `gorm:"type:varchar(200);column:contact_person"`
	Email         string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:varchar(500)"`
	City          string `gorm:"type:varchar(100)"`
	PostalCode    string `gorm:"type:varchar(20);column:postal_code"`
	Country       string `gorm:"type:varchar(100)"`
	VATNumber     string `gorm:"type:varchar(50);column:vat_number"`
	Notes         string `gorm:"type:text"`
}

// Port represents a seaport used as loading or discharge point
type Port struct {
	BaseModel
	Code    string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name    string `gorm:"type:varchar(200);not null;index"`
	City    string `gorm:"type:varchar(100)"`
	Country string `gorm:"type:varchar(100)"`
}

// Supplier represents a vendor appearing on purchase-side finance rows
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(200);not null;index"`
	ContactPerson string `gorm:"type:varchar(200);column:contact_person"`
	Email         string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(50)"`
	Country       string `gorm:"type:varchar(100)"`
}

// Service represents a billable service from the master data catalog.
// Default prices prefill new finance rows when the caller omits them.
type Service struct {
	BaseModel
	Name                 string   `gorm:"type:varchar(200);not null;index"`
	Description          string   `gorm:"type:text"`
	DefaultPurchasePrice *float64 `gorm:"column:default_purchase_price"`
	DefaultSalesPrice    *float64 `gorm:"column:default_sales_price"`
}

// Case represents a logistics job, either a quotation or a booking
type Case struct {
	BaseModel
	CaseNumber        string        `gorm:"type:varchar(50);not null;uniqueIndex;column:case_number"`
	CaseType          CaseType      `gorm:"type:varchar(20);not null;default:'booking';index;column:case_type"`
	Direction         CaseDirection `gorm:"type:varchar(20);not null;default:'export';index"`
	Status            CaseStatus    `gorm:"type:varchar(20);not null;default:'draft';index"`
	CustomerID        *uuid.UUID    `gorm:"type:uuid;index;column:customer_id"`
	Customer          *Customer     `gorm:"foreignKey:CustomerID"`
	CustomerReference string        `gorm:"type:varchar(100);column:customer_reference"`

	// Cargo
	CargoDescription  string   `gorm:"type:text;column:cargo_description"`
	ContainerType     string   `gorm:"type:varchar(50);column:container_type"`
	ContainerQuantity *int     `gorm:"column:container_quantity"`
	WeightKg          *float64 `gorm:"column:weight_kg"`
	VolumeCbm         *float64 `gorm:"column:volume_cbm"`

	// Route
	LoadingPortID     *uuid.UUID `gorm:"type:uuid;index;column:loading_port_id"`
	LoadingPort       *Port      `gorm:"foreignKey:LoadingPortID"`
	DischargePortID   *uuid.UUID `gorm:"type:uuid;index;column:discharge_port_id"`
	DischargePort     *Port      `gorm:"foreignKey:DischargePortID"`
	LoadingTerminal   string     `gorm:"type:varchar(200);column:loading_terminal"`
	DischargeTerminal string     `gorm:"type:varchar(200);column:discharge_terminal"`
	VesselName        string     `gorm:"type:varchar(200);column:vessel_name"`
	Carrier           string     `gorm:"type:varchar(200)"`
	VoyageNumber      string     `gorm:"type:varchar(50);column:voyage_number"`

	// Dates
	PickupDate          *time.Time `gorm:"column:pickup_date"`
	DeliveryDate        *time.Time `gorm:"column:delivery_date"`
	StandardClosing     *time.Time `gorm:"column:standard_closing"`
	VWMClosing          *time.Time `gorm:"column:vwm_closing"`
	CYClosing           *time.Time `gorm:"column:cy_closing"`
	DockClosingCarrier  *time.Time `gorm:"column:dock_closing_carrier"`
	DockClosingCustomer *time.Time `gorm:"column:dock_closing_customer"`
	ValidityFrom        *time.Time `gorm:"column:validity_from"`
	ValidityTo          *time.Time `gorm:"column:validity_to"`

	// Terms
	Incoterms    string `gorm:"type:varchar(10)"`
	PaymentTerms string `gorm:"type:varchar(200);column:payment_terms"`
	Notes        string `gorm:"type:text"`

	FinanceRows   []CaseFinance       `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
	Documents     []CaseDocument      `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
	StatusHistory []CaseStatusHistory `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
}

// CaseFinance is one cost/revenue line item attached to a case
type CaseFinance struct {
	BaseModel
	CaseID           uuid.UUID  `gorm:"type:uuid;not null;index;column:case_id"`
	Quantity         float64    `gorm:"not null;default:1"`
	ServiceID        *uuid.UUID `gorm:"type:uuid;index;column:service_id"`
	Service          *Service   `gorm:"foreignKey:ServiceID"`
	Description      string     `gorm:"type:text"`
	PurchasePrice    float64    `gorm:"not null;default:0;column:purchase_price"`
	PurchaseCurrency Currency   `gorm:"type:varchar(3);not null;default:'EUR';column:purchase_currency"`
	SupplierID       *uuid.UUID `gorm:"type:uuid;index;column:supplier_id"`
	Supplier         *Supplier  `gorm:"foreignKey:SupplierID"`
	SalesPrice       float64    `gorm:"not null;default:0;column:sales_price"`
	SalesCurrency    Currency   `gorm:"type:varchar(3);not null;default:'EUR';column:sales_currency"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index;column:customer_id"`
	Customer         *Customer  `gorm:"foreignKey:CustomerID"`
}

// FinanceSummary holds the derived ledger aggregate for one case.
// It is recomputed from the full row set and never stored.
type FinanceSummary struct {
	TotalPurchase float64 `json:"totalPurchase"`
	TotalSales    float64 `json:"totalSales"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"marginPercent"`
	RowCount      int     `json:"rowCount"`
}

// SummarizeFinance computes the ledger aggregate from a set of rows.
// Margin is zero when total sales is zero.
func SummarizeFinance(rows []CaseFinance) FinanceSummary {
	s := FinanceSummary{RowCount: len(rows)}
	for _, row := range rows {
		s.TotalPurchase += row.PurchasePrice * row.Quantity
		s.TotalSales += row.SalesPrice * row.Quantity
	}
	s.Profit = s.TotalSales - s.TotalPurchase
	if s.TotalSales > 0 {
		s.MarginPercent = s.Profit / s.TotalSales * 100
	}
	return s
}

// CaseDocument is a generated document with placeholders already substituted.
// Rows are immutable once created except by deletion.
type CaseDocument struct {
	BaseModel
	CaseID       uuid.UUID `gorm:"type:uuid;not null;index;column:case_id"`
	Name         string    `gorm:"type:varchar(200);not null"`
	DocumentType string    `gorm:"type:varchar(50);not null;column:document_type"`
	HTMLContent  string    `gorm:"type:text;not null;column:html_content"`
	StoragePath  string    `gorm:"type:varchar(500);column:storage_path"`
}

// DocumentTemplate is a reusable document layout with {{name}} placeholders
type DocumentTemplate struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	DocumentType string `gorm:"type:varchar(50);not null;index;column:document_type"`
	Content      string `gorm:"type:text;not null"`
}

// CaseStatusHistory is one append-only status transition record
type CaseStatusHistory struct {
	BaseModel
	CaseID       uuid.UUID   `gorm:"type:uuid;not null;index;column:case_id"`
	OldStatus    *CaseStatus `gorm:"type:varchar(20);column:old_status"`
	NewStatus    CaseStatus  `gorm:"type:varchar(20);not null;column:new_status"`
	ChangedBy    string      `gorm:"type:varchar(200);not null;column:changed_by"`
	ChangeReason string      `gorm:"type:varchar(500);column:change_reason"`
}

// TableName overrides the table name for CaseStatusHistory
func (CaseStatusHistory) TableName() string {
	return "case_status_history"
}

// NumberSequence tracks sequential document numbers per prefix and year
type NumberSequence struct {
	BaseModel
	Prefix      string `gorm:"type:varchar(10);not null;uniqueIndex:idx_prefix_year"`
	Year        int    `gorm:"not null;uniqueIndex:idx_prefix_year"`
	LastNumber  int    `gorm:"not null;default:0;column:last_number"`
	Description string `gorm:"type:varchar(200)"`
}
