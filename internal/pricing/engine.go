package pricing

import "math"

// Quote is a fully computed price for one calculator selection. All
// monetary values are whole currency units: rounding happens once per
// aggregate, not per line.
type Quote struct {
	OriginalPrice  int64 `json:"original_price"`
	UnitPrice      int64 `json:"unit_price"`
	TotalPrice     int64 `json:"total_price"`
	DiscountAmount int64 `json:"discount_amount"`
}

// QuoteSubscription prices a package over a duration. The duration
// discount applies to the monthly rate before multiplying by months,
// so the discounted monthly price stays a round number on the UI.
func QuoteSubscription(basePrice float64, months int, discountPercent float64) Quote {
	if months <= 0 {
		return Quote{}
	}
	unit := basePrice - basePrice*discountPercent/100
	total := int64(math.Round(unit * float64(months)))
	original := int64(math.Round(basePrice * float64(months)))
	return Quote{
		OriginalPrice:  original,
		UnitPrice:      int64(math.Round(unit)),
		TotalPrice:     total,
		DiscountAmount: original - total,
	}
}

// QuoteOneTime prices a set of one-time services across an episode
// count tier. The tier discount applies to the per-episode sum.
func QuoteOneTime(servicePrices []float64, episodes int, discountPercent float64) Quote {
	if episodes <= 0 || len(servicePrices) == 0 {
		return Quote{}
	}
	var perEpisode float64
	for _, p := range servicePrices {
		perEpisode += p
	}
	unit := perEpisode - perEpisode*discountPercent/100
	total := int64(math.Round(unit * float64(episodes)))
	original := int64(math.Round(perEpisode * float64(episodes)))
	return Quote{
		OriginalPrice:  original,
		UnitPrice:      int64(math.Round(unit)),
		TotalPrice:     total,
		DiscountAmount: original - total,
	}
}
