// Package dto provides data transfer objects for the invoice HTTP responses.
package dto

import (
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

// InvoiceResponse represents an invoice row of the dashboard listing.
type InvoiceResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ImageURL   string `json:"image_url"`
	// Amount is in cents; AmountFormatted is the display value in dollars.
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Status          string `json:"status"`
	Date            string `json:"date"`
}

// ListInvoicesResponse represents one page of the invoice listing.
type ListInvoicesResponse struct {
	Data        []InvoiceResponse `json:"data"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
}

// FormatAmount renders cents as a dollar amount, e.g. 1234 -> "$12.34".
func FormatAmount(cents int64) string {
	amount := invoiceDomain.FromCents(cents)
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// MapInvoiceToResponse converts a listing item to an API response.
func MapInvoiceToResponse(item *invoiceDomain.InvoiceListItem) InvoiceResponse {
	return InvoiceResponse{
		ID:              item.ID.String(),
		CustomerID:      item.CustomerID.String(),
		Name:            item.Name,
		Email:           item.Email,
		ImageURL:        item.ImageURL,
		Amount:          item.Amount,
		AmountFormatted: FormatAmount(item.Amount),
		Status:          string(item.Status),
		Date:            item.Date.Format(invoiceDomain.DateLayout),
	}
}

// MapInvoicePageToResponse converts a listing page to an API response.
func MapInvoicePageToResponse(page *invoiceDomain.InvoicePage) ListInvoicesResponse {
	data := make([]InvoiceResponse, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, MapInvoiceToResponse(item))
	}
	return ListInvoicesResponse{
		Data:        data,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}
