package enum

// PaymentMethod is how a finalized sale was settled.
type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// Valid reports whether the method is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCash, PaymentCard:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
