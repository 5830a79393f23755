// Package domain defines the customer model.
package domain

import (
	"github.com/google/uuid"
)

// DefaultImageURL is the avatar every new customer gets.
const DefaultImageURL = "/customers/default-pfp.png"

// Customer is someone invoices are billed to. Email is unique.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}

// CustomerListItem is a customer with totals over their invoices. Totals are in cents.
type CustomerListItem struct {
	ID            uuid.UUID
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int
	TotalPending  int64
	TotalPaid     int64
}

// CustomerPage is one page of a filtered customer listing.
type CustomerPage struct {
	Items       []*CustomerListItem
	CurrentPage int
	TotalPages  int
}

// CustomerOption is an entry of the customer select of the invoice forms.
type CustomerOption struct {
	ID   uuid.UUID
	Name string
}
