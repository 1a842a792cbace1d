package referral

// Policy decides the bonus rate, in basis points of the purchase price,
// for an inviter who already received bonuses for paidCount referrals.
type Policy interface {
	Rate(paidCount int64) int64
}

// FlatPolicy pays a large rate on the inviter's first settled referral and a
// small residual rate on every one after it.
type FlatPolicy struct {
	FirstBps      int64
	SubsequentBps int64
}

func (p FlatPolicy) Rate(paidCount int64) int64 {
	if paidCount == 0 {
		return p.FirstBps
	}
	return p.SubsequentBps
}

// TieredPolicy grows the rate with the number of settled referrals. Rates
// holds the ladder; inviters past the last rung stay on the final rate.
type TieredPolicy struct {
	Rates []int64
}

func (p TieredPolicy) Rate(paidCount int64) int64 {
	if len(p.Rates) == 0 {
		return 0
	}
	if paidCount >= int64(len(p.Rates)) {
		return p.Rates[len(p.Rates)-1]
	}
	return p.Rates[paidCount]
}

// Bonus applies a basis-point rate to a purchase price in centavos,
// truncating fractional centavos.
func Bonus(price, rateBps int64) int64 {
	return price * rateBps / 10000
}
