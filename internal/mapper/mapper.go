package mapper

import (
	"fmt"
	"time"

	"github.com/harborline/caseflow-api/internal/domain"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(customer *domain.Customer) domain.CustomerDTO {
	return domain.CustomerDTO{
		ID:            customer.ID,
		CompanyName:   customer.CompanyName,
		CustomerCode:  customer.CustomerCode,
		ContactPerson: customer.ContactPerson,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       customer.Address,
		City:          customer.City,
		PostalCode:    customer.PostalCode,
		Country:       customer.Country,
		VATNumber:     customer.VATNumber,
		Notes:         customer.Notes,
		CreatedAt:     customer.CreatedAt.Format(timestampLayout),
		UpdatedAt:     customer.UpdatedAt.Format(timestampLayout),
	}
}

// ToPortDTO converts Port to PortDTO
func ToPortDTO(port *domain.Port) domain.PortDTO {
	return domain.PortDTO{
		ID:      port.ID,
		Code:    port.Code,
		Name:    port.Name,
		City:    port.City,
		Country: port.Country,
	}
}

// ToSupplierDTO converts Supplier to SupplierDTO
func ToSupplierDTO(supplier *domain.Supplier) domain.SupplierDTO {
	return domain.SupplierDTO{
		ID:            supplier.ID,
		Name:          supplier.Name,
		ContactPerson: supplier.ContactPerson,
		Email:         supplier.Email,
		Phone:         supplier.Phone,
		Country:       supplier.Country,
	}
}

// ToServiceDTO converts Service to ServiceDTO
func ToServiceDTO(svc *domain.Service) domain.ServiceDTO {
	return domain.ServiceDTO{
		ID:                   svc.ID,
		Name:                 svc.Name,
		Description:          svc.Description,
		DefaultPurchasePrice: svc.DefaultPurchasePrice,
		DefaultSalesPrice:    svc.DefaultSalesPrice,
	}
}

// ToCaseDTO converts Case to CaseDTO with expanded relations when loaded
func ToCaseDTO(c *domain.Case) domain.CaseDTO {
	dto := domain.CaseDTO{
		ID:                c.ID,
		CaseNumber:        c.CaseNumber,
		CaseType:          c.CaseType,
		Direction:         c.Direction,
		Status:            c.Status,
		CustomerID:        c.CustomerID,
		CustomerReference: c.CustomerReference,

		CargoDescription:  c.CargoDescription,
		ContainerType:     c.ContainerType,
		ContainerQuantity: c.ContainerQuantity,
		WeightKg:          c.WeightKg,
		VolumeCbm:         c.VolumeCbm,

		LoadingPortID:     c.LoadingPortID,
		DischargePortID:   c.DischargePortID,
		LoadingTerminal:   c.LoadingTerminal,
		DischargeTerminal: c.DischargeTerminal,
		VesselName:        c.VesselName,
		Carrier:           c.Carrier,
		VoyageNumber:      c.VoyageNumber,

		PickupDate:          formatDate(c.PickupDate),
		DeliveryDate:        formatDate(c.DeliveryDate),
		StandardClosing:     formatDate(c.StandardClosing),
		VWMClosing:          formatDate(c.VWMClosing),
		CYClosing:           formatDate(c.CYClosing),
		DockClosingCarrier:  formatDate(c.DockClosingCarrier),
		DockClosingCustomer: formatDate(c.DockClosingCustomer),
		ValidityFrom:        formatDate(c.ValidityFrom),
		ValidityTo:          formatDate(c.ValidityTo),

		Incoterms:    c.Incoterms,
		PaymentTerms: c.PaymentTerms,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(timestampLayout),
		UpdatedAt:    c.UpdatedAt.Format(timestampLayout),
	}

	if c.Customer != nil {
		customerDTO := ToCustomerDTO(c.Customer)
		dto.Customer = &customerDTO
	}
	if c.LoadingPort != nil {
		portDTO := ToPortDTO(c.LoadingPort)
		dto.LoadingPort = &portDTO
	}
	if c.DischargePort != nil {
		portDTO := ToPortDTO(c.DischargePort)
		dto.DischargePort = &portDTO
	}

	return dto
}

// ToCaseFinanceDTO converts CaseFinance to CaseFinanceDTO
func ToCaseFinanceDTO(row *domain.CaseFinance) domain.CaseFinanceDTO {
	dto := domain.CaseFinanceDTO{
		ID:               row.ID,
		CaseID:           row.CaseID,
		Quantity:         row.Quantity,
		ServiceID:        row.ServiceID,
		Description:      row.Description,
		PurchasePrice:    row.PurchasePrice,
		PurchaseCurrency: row.PurchaseCurrency,
		SupplierID:       row.SupplierID,
		SalesPrice:       row.SalesPrice,
		SalesCurrency:    row.SalesCurrency,
		CustomerID:       row.CustomerID,
		CreatedAt:        row.CreatedAt.Format(timestampLayout),
	}
	if row.Service != nil {
		serviceDTO := ToServiceDTO(row.Service)
		dto.Service = &serviceDTO
	}
	if row.Supplier != nil {
		supplierDTO := ToSupplierDTO(row.Supplier)
		dto.Supplier = &supplierDTO
	}
	return dto
}

// ToFinanceLedgerDTO bundles ledger rows with the recomputed summary
func ToFinanceLedgerDTO(rows []domain.CaseFinance) domain.FinanceLedgerDTO {
	dtos := make([]domain.CaseFinanceDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, ToCaseFinanceDTO(&rows[i]))
	}
	return domain.FinanceLedgerDTO{
		Rows:    dtos,
		Summary: domain.SummarizeFinance(rows),
	}
}

// ToCaseDocumentDTO converts CaseDocument to CaseDocumentDTO
func ToCaseDocumentDTO(doc *domain.CaseDocument) domain.CaseDocumentDTO {
	return domain.CaseDocumentDTO{
		ID:           doc.ID,
		CaseID:       doc.CaseID,
		Name:         doc.Name,
		DocumentType: doc.DocumentType,
		HTMLContent:  doc.HTMLContent,
		CreatedAt:    doc.CreatedAt.Format(timestampLayout),
	}
}

// ToDocumentTemplateDTO converts DocumentTemplate to DocumentTemplateDTO
func ToDocumentTemplateDTO(tmpl *domain.DocumentTemplate) domain.DocumentTemplateDTO {
	return domain.DocumentTemplateDTO{
		ID:           tmpl.ID,
		Name:         tmpl.Name,
		DocumentType: tmpl.DocumentType,
		Content:      tmpl.Content,
	}
}

// ToCaseStatusHistoryDTO converts CaseStatusHistory to its DTO
func ToCaseStatusHistoryDTO(entry *domain.CaseStatusHistory) domain.CaseStatusHistoryDTO {
	return domain.CaseStatusHistoryDTO{
		ID:           entry.ID,
		CaseID:       entry.CaseID,
		OldStatus:    entry.OldStatus,
		NewStatus:    entry.NewStatus,
		ChangedBy:    entry.ChangedBy,
		ChangeReason: entry.ChangeReason,
		CreatedAt:    entry.CreatedAt.Format(timestampLayout),
	}
}

// ParseDate parses a YYYY-MM-DD request field into a UTC time
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// FormatError creates a formatted error message
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
