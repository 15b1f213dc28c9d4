// Package refund computes the amount returned to a member when a
// reservation is cancelled, based on how far ahead of the class start the
// cancellation happens.
package refund

import (
	"errors"
	"time"
)

// ErrNegativeAmount is returned when the paid amount precondition is
// violated. A reservation can never carry a negative price, so this is a
// data-integrity failure rather than a business outcome.
var ErrNegativeAmount = errors.New("refund: paid amount is negative")

const (
	fullRefundLead = 24 * time.Hour
	halfRefundLead = 2 * time.Hour
)

// Amount returns the refund in cents for a reservation that paid
// paidCents, for a class starting at classStart, cancelled at cancelAt.
//
// Lead-time bands, lower bounds inclusive:
//
//	lead >= 24h          full refund
//	2h <= lead < 24h     half refund
//	lead < 2h            no refund
//
// Cancelling strictly after the class start always refunds nothing.
func Amount(paidCents int64, classStart, cancelAt time.Time) (int64, error) {
	if paidCents < 0 {
		return 0, ErrNegativeAmount
	}

	if cancelAt.After(classStart) {
		return 0, nil
	}

	lead := classStart.Sub(cancelAt)
	switch {
	case lead >= fullRefundLead:
		return paidCents, nil
	case lead >= halfRefundLead:
		return half(paidCents), nil
	default:
		return 0, nil
	}
}

// half rounds an odd cent count half away from zero.
func half(cents int64) int64 {
	return (cents + 1) / 2
}
