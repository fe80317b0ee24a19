package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := New("PAY-1", "ORD-1", "C1", decimal.RequireFromString("25.00"), MethodCreditCard, "tx-1", "stripe", "tester")
	require.NoError(t, err)
	return p
}

func TestNewStartsProcessing(t *testing.T) {
	p := newPayment(t)
	assert.Equal(t, StatusProcessing, p.Status)
	assert.Equal(t, "tx-1", p.TransactionID)
	assert.True(t, p.Settleable())
}

func TestNewRejectsNonPositiveAmount(t *testing.T) {
	_, err := New("PAY-1", "ORD-1", "C1", decimal.Zero, MethodCreditCard, "tx-1", "stripe", "tester")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = New("PAY-1", "ORD-1", "C1", decimal.RequireFromString("-1"), MethodCreditCard, "tx-1", "stripe", "tester")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSettleAndDeclineAreTerminal(t *testing.T) {
	p := newPayment(t)
	p.Settle()
	assert.Equal(t, StatusCompleted, p.Status)
	assert.False(t, p.Settleable())

	q := newPayment(t)
	q.Decline()
	assert.Equal(t, StatusFailed, q.Status)
	assert.False(t, q.Settleable())
}

func TestRefundOnlyFromCompleted(t *testing.T) {
	p := newPayment(t)

	err := p.Refund()
	assert.ErrorIs(t, err, ErrNotRefundable)
	assert.Equal(t, StatusProcessing, p.Status, "failed refund must leave the payment unchanged")

	p.Settle()
	require.NoError(t, p.Refund())
	assert.Equal(t, StatusRefunded, p.Status)

	err = p.Refund()
	assert.ErrorIs(t, err, ErrNotRefundable)
	assert.Equal(t, StatusRefunded, p.Status)
}

func TestRefundAfterDeclineRejected(t *testing.T) {
	p := newPayment(t)
	p.Decline()
	assert.ErrorIs(t, p.Refund(), ErrNotRefundable)
	assert.Equal(t, StatusFailed, p.Status)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("UPI")
	require.NoError(t, err)
	assert.Equal(t, MethodUPI, m)

	_, err = ParseMethod("BARTER")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
