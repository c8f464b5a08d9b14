package models

// PriceBreakdown is derived from the base price and active discount. It is
// recomputed whenever either input changes and is never cached across a
// mutation of checkout state.
type PriceBreakdown struct {
	BasePrice          float64 `json:"basePrice"`
	Discount           float64 `json:"discount"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount"`
	Taxes              float64 `json:"taxes"`
	FinalPrice         float64 `json:"finalPrice"`
}
