package booking

import (
	"strconv"
	"strings"
	"time"

	"vehicle-rental/internal/domain/money"
)

// TierBoundary is the longest duration still billed per hour.
const TierBoundary = 24 * time.Hour

type Rates struct {
	PerHour money.Money
	PerDay  money.Money
}

type PriceCalculator interface {
	TotalAmount(rates Rates, slot TimeSlot) money.Money
}

type TieredPriceCalculator struct{}

func NewTieredPriceCalculator() *TieredPriceCalculator {
	return &TieredPriceCalculator{}
}

func (TieredPriceCalculator) TotalAmount(rates Rates, slot TimeSlot) money.Money {
	return ComputeTotalAmount(rates.PerHour, rates.PerDay, slot.Start(), slot.End())
}

// ComputeTotalAmount prices [start, end).
//
// Up to and including 24h: pricePerHour times the hours rounded to two
// decimals, the product rounded to cents half-to-even. Beyond 24h:
// pricePerDay times the whole days elapsed; the remainder is free. A
// non-positive duration costs nothing. Rates above money.MaxAmount are
// outside the domain; within it neither product can overflow.
func ComputeTotalAmount(pricePerHour, pricePerDay money.Money, start, end time.Time) money.Money {
	d := end.Sub(start)
	if d <= 0 {
		return money.FromCents(0)
	}

	if d > TierBoundary {
		return pricePerDay.Multiply(int64(d / TierBoundary))
	}

	return money.FromCents(divRoundHalfEven(pricePerHour.Cents()*hourHundredths(d), 100))
}

// hourHundredths rounds seconds/3600 to two decimals the way a float
// round(x, 2) does: the exact binary value goes to the nearest hundredth,
// ties to even. 1.055h is stored as 1.05499... and becomes 1.05.
func hourHundredths(d time.Duration) int64 {
	s := strconv.FormatFloat(d.Seconds()/3600, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	w, _ := strconv.ParseInt(whole, 10, 64)
	f, _ := strconv.ParseInt(frac, 10, 64)
	return w*100 + f
}

func divRoundHalfEven(n, d int64) int64 {
	q, r := n/d, n%d
	if r < 0 {
		r = -r
	}
	switch twice := 2 * r; {
	case twice > d, twice == d && q%2 != 0:
		if n < 0 {
			return q - 1
		}
		return q + 1
	default:
		return q
	}
}
