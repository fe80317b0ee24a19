package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrConflict      = errors.New("payment: already exists")
	ErrInvalidAmount = errors.New("payment: amount must be greater than zero")
	ErrInvalidMethod = errors.New("payment: unknown payment method")
	ErrInvalidStatus = errors.New("payment: unknown status")
	ErrNotRefundable = errors.New("payment: only completed payments can be refunded")
)

type Method string

const (
	MethodCreditCard Method = "CREDIT_CARD"
	MethodDebitCard  Method = "DEBIT_CARD"
	MethodUPI        Method = "UPI"
	MethodNetBanking Method = "NET_BANKING"
	MethodWallet     Method = "WALLET"
	MethodCOD        Method = "COD"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet, MethodCOD:
		return Method(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusRefunded   Status = "REFUNDED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type Payment struct {
	ID            string
	OrderID       string
	CustomerID    string
	Amount        decimal.Decimal
	Method        Method
	Status        Status
	TransactionID string
	Gateway       string
	PaymentDate   time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New builds a payment in the PROCESSING status. The transaction ID is fixed
// here and never regenerated.
func New(id, orderID, customerID string, amount decimal.Decimal, method Method, transactionID, gateway, createdBy string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	return &Payment{
		ID:            id,
		OrderID:       orderID,
		CustomerID:    customerID,
		Amount:        amount,
		Method:        method,
		Status:        StatusProcessing,
		TransactionID: transactionID,
		Gateway:       gateway,
		PaymentDate:   now,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Settleable reports whether the payment still awaits settlement.
func (p *Payment) Settleable() bool {
	return p.Status == StatusPending || p.Status == StatusProcessing
}

func (p *Payment) Settle() {
	p.Status = StatusCompleted
	p.touch()
}

func (p *Payment) Decline() {
	p.Status = StatusFailed
	p.touch()
}

// Refund transitions a completed payment to refunded; any other current
// status rejects the refund and leaves the payment untouched.
func (p *Payment) Refund() error {
	if p.Status != StatusCompleted {
		return ErrNotRefundable
	}
	p.Status = StatusRefunded
	p.touch()
	return nil
}

// OverrideStatus sets the status directly, bypassing the settlement machine.
// Kept for collaborator parity with the upstream status-update surface.
func (p *Payment) OverrideStatus(s Status) {
	p.Status = s
	p.touch()
}

func (p *Payment) Clone() *Payment {
	clone := *p
	return &clone
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
