package demand

import "math/rand/v2"

// Promo lifts a baseline of 1.0 to PromoValue during NumRandomPromos
// randomly placed promotions of Duration samples each.
type Promo struct {
	PromoValue      float64
	NumRandomPromos int
	Duration        int
}

// NewPromo requires a positive lift, a non-negative promo count and a duration of at least one sample.
func NewPromo(promoValue float64, numRandomPromos, duration int) (*Promo, error) {
	if err := requireFinite(string(KindPromo), "promo_value", promoValue); err != nil {
		return nil, err
	}
	if promoValue <= 0 {
		return nil, configErrorf(ErrOutOfRange, string(KindPromo), "promo_value",
			"must be positive, got %v", promoValue)
	}
	if numRandomPromos < 0 {
		return nil, configErrorf(ErrOutOfRange, string(KindPromo), "num_random_promos",
			"must be non-negative, got %d", numRandomPromos)
	}
	if duration < 1 {
		return nil, configErrorf(ErrOutOfRange, string(KindPromo), "duration",
			"must be at least 1, got %d", duration)
	}
	return &Promo{PromoValue: promoValue, NumRandomPromos: numRandomPromos, Duration: duration}, nil
}

func (p *Promo) Kind() Kind   { return KindPromo }
func (p *Promo) Name() string { return string(KindPromo) }

func (p *Promo) BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	values := repeat(1, n)
	count := min(p.NumRandomPromos, n)
	if count == 0 {
		return values, nil
	}
	for _, start := range rng.Perm(n)[:count] {
		for i := start; i < min(start+p.Duration, n); i++ {
			values[i] = p.PromoValue
		}
	}
	return values, nil
}
