// Package dto provides data transfer objects for the customer HTTP responses.
package dto

import (
	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	invoiceDto "github.com/invoicedash/dashboard/internal/invoice/http/dto"
)

// CustomerResponse represents a customer row of the dashboard listing.
type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// ListCustomersResponse represents one page of the customer listing.
type ListCustomersResponse struct {
	Data        []CustomerResponse `json:"data"`
	CurrentPage int                `json:"current_page"`
	TotalPages  int                `json:"total_pages"`
}

// CustomerOptionResponse is an entry of the customer select.
type CustomerOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MapCustomerPageToResponse converts a listing page to an API response.
func MapCustomerPageToResponse(page *customerDomain.CustomerPage) ListCustomersResponse {
	data := make([]CustomerResponse, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, CustomerResponse{
			ID:            item.ID.String(),
			Name:          item.Name,
			Email:         item.Email,
			ImageURL:      item.ImageURL,
			TotalInvoices: item.TotalInvoices,
			TotalPending:  invoiceDto.FormatAmount(item.TotalPending),
			TotalPaid:     invoiceDto.FormatAmount(item.TotalPaid),
		})
	}
	return ListCustomersResponse{
		Data:        data,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}

// MapOptionsToResponse converts customer options to an API response.
func MapOptionsToResponse(options []*customerDomain.CustomerOption) []CustomerOptionResponse {
	response := make([]CustomerOptionResponse, 0, len(options))
	for _, option := range options {
		response = append(response, CustomerOptionResponse{ID: option.ID.String(), Name: option.Name})
	}
	return response
}
