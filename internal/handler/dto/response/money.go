package response

import "vehicle-rental/internal/domain/money"

// amount renders cents as a decimal string such as "1500.00".
func amount(cents int64) string {
	return money.FromCents(cents).String()
}
