package quotation

import (
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateQuotationItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type CreateQuotationRequest struct {
	ClientKind     string                       `json:"client_kind"`
	ClientID       string                       `json:"client_id"`
	Items          []CreateQuotationItemRequest `json:"items"`
	TaxRate        string                       `json:"tax_rate"`
	DiscountAmount string                       `json:"discount_amount"`
	ExpiryDate     *string                      `json:"expiry_date,omitempty"`
}

func (r CreateQuotationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Ref().Valid() {
		errs = errs.Add("client", "Client must be a valid user or client reference")
	}
	if len(r.Items) == 0 {
		errs = errs.Add("items", "At least one line item is required")
	}
	for _, item := range r.Items {
		if _, err := decimal.NewFromString(item.Quantity); err != nil {
			errs = errs.Add("items", "Quantity must be a decimal number")
		}
		if _, err := decimal.NewFromString(item.UnitPrice); err != nil {
			errs = errs.Add("items", "Unit price must be a decimal number")
		}
	}
	if r.TaxRate != "" {
		if _, err := decimal.NewFromString(r.TaxRate); err != nil {
			errs = errs.Add("tax_rate", "Tax rate must be a decimal number")
		}
	}
	if r.DiscountAmount != "" {
		if _, err := decimal.NewFromString(r.DiscountAmount); err != nil {
			errs = errs.Add("discount_amount", "Discount must be a decimal number")
		}
	}
	if r.ExpiryDate != nil {
		if _, ok := validator.IsValidDate(*r.ExpiryDate); !ok {
			errs = errs.Add("expiry_date", "Invalid date format, expected YYYY-MM-DD")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateQuotationRequest) Ref() party.Ref {
	return party.Ref{Kind: party.Kind(r.ClientKind), ID: r.ClientID}
}
