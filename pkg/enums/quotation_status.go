package enums

import "fmt"

// QuotationStatus tracks a quotation through its lifecycle.
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusApproved QuotationStatus = "approved"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusPaid     QuotationStatus = "paid"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusApproved,
	QuotationStatusRejected,
	QuotationStatusPaid,
}

// String implements fmt.Stringer.
func (q QuotationStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuotationStatus.
func (q QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
func (q QuotationStatus) CanTransitionTo(next QuotationStatus) bool {
	switch q {
	case QuotationStatusDraft:
		return next == QuotationStatusSent
	case QuotationStatusSent:
		return next == QuotationStatusApproved || next == QuotationStatusRejected
	case QuotationStatusApproved:
		return next == QuotationStatusPaid
	default:
		return false
	}
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}

// IsDraft reports whether the quotation is still editable.
func (q QuotationStatus) IsDraft() bool {
	return q == QuotationStatusDraft
}
