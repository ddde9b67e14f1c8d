package checkout

import (
	"regexp"
	"strings"

	"shopkart/internal/model"
)

// PaymentDetails carries the method-specific fields submitted at checkout.
type PaymentDetails struct {
	Method     model.PaymentMethod `json:"paymentMethod"`
	CardNumber string              `json:"cardNumber,omitempty"`
	CardCVV    string              `json:"cardCvv,omitempty"`
	UPIID      string              `json:"upiId,omitempty"`
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// luhnValid runs the Luhn checksum over a card-number-like digit string.
// Whitespace is stripped first; the digit count must be 12-19. Digits are
// traversed right to left with every second one doubled, subtracting 9
// from doubled values above 9; the number is valid when the sum is
// divisible by 10.
func luhnValid(number string) bool {
	number = strings.Join(strings.Fields(number), "")
	if !cardNumberPattern.MatchString(number) {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		n := int(number[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}

	return sum%10 == 0
}

// validUPI reports whether the identifier contains exactly one '@'
// separating a non-empty handle and provider.
func validUPI(id string) bool {
	handle, provider, found := strings.Cut(id, "@")
	if !found {
		return false
	}
	return handle != "" && provider != "" && !strings.Contains(provider, "@")
}

// validatePaymentDetails runs the method-specific checks. Cash on delivery
// requires no additional fields.
func validatePaymentDetails(details PaymentDetails) error {
	switch details.Method {
	case model.PaymentCard:
		if !luhnValid(details.CardNumber) {
			return model.InvalidPaymentDetails("Invalid card number")
		}
		if !cvvPattern.MatchString(details.CardCVV) {
			return model.InvalidPaymentDetails("Invalid CVV")
		}
	case model.PaymentUPI:
		if !validUPI(details.UPIID) {
			return model.InvalidPaymentDetails("Invalid UPI ID")
		}
	case model.PaymentCashOnDelivery:
		// No additional fields required.
	default:
		return model.InvalidPaymentDetails("Unsupported payment method: " + string(details.Method))
	}

	return nil
}
