package event

import (
	"context"
	"time"
)

const (
	RoutingKeyCustomerCreated = "customer.created"
	RoutingKeyCustomerUpdated = "customer.updated"
	RoutingKeyCustomerDeleted = "customer.deleted"
	RoutingKeyCreditIssued    = "credit.issued"
)

// Publisher delivers domain events to the message broker.
type Publisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error
	PublishCreditIssued(ctx context.Context, event CreditIssuedEvent) error
}

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Income     string    `json:"income"`
	ZipCode    string    `json:"zipCode"`
	Street     string    `json:"street"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customerId"`
}

type CreditIssuedEvent struct {
	Timestamp            time.Time `json:"timestamp"`
	CreditCode           string    `json:"creditCode"`
	CustomerID           int64     `json:"customerId"`
	CreditValue          string    `json:"creditValue"`
	DayFirstInstallment  string    `json:"dayFirstInstallment"`
	NumberOfInstallments int       `json:"numberOfInstallments"`
	Status               string    `json:"status"`
}
