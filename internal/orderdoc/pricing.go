package orderdoc

import "math"

// Derived holds the monetary fields computed from one line's unit price,
// quantity and discount rate. Consumer amounts are at catalog price,
// order amounts are after discount. All values are rounded to whole
// currency units.
type Derived struct {
	ConsumerSupply int64 `json:"consumer_supply"`
	ConsumerVat    int64 `json:"consumer_vat"`
	ConsumerTotal  int64 `json:"consumer_total"`
	OrderUnitPrice int64 `json:"order_unit_price"`
	OrderSupply    int64 `json:"order_supply"`
	OrderVat       int64 `json:"order_vat"`
	OrderTotal     int64 `json:"order_total"`
}

// Derive computes the derived monetary fields for a single line.
//
// The arithmetic runs on the absolute quantity and the original sign is
// re-applied to every output except OrderUnitPrice, which is a per-unit
// rate and never sign-adjusted. VAT is the 10%-inclusive rate, i.e.
// total/1.1/10. Supply amounts are computed after VAT rounding so that
// supply + vat == total holds exactly.
//
// The discount rate is expected to already be within [0, 100]; callers
// validate before deriving.
func Derive(consumerUnitPrice, quantity int64, discountRate float64) Derived {
	if consumerUnitPrice == 0 || quantity == 0 {
		return Derived{}
	}

	sign := int64(1)
	qty := quantity
	if qty < 0 {
		sign = -1
		qty = -qty
	}

	consumerTotal := consumerUnitPrice * qty
	consumerVat := roundHalf(float64(consumerTotal) / 1.1 / 10)
	consumerSupply := consumerTotal - consumerVat

	factor := (100 - discountRate) / 100
	orderTotal := roundHalf(float64(consumerUnitPrice*qty) * factor)
	orderUnitPrice := roundHalf(float64(consumerUnitPrice) * factor)
	orderVat := roundHalf(float64(orderTotal) / 1.1 / 10)
	orderSupply := orderTotal - orderVat

	return Derived{
		ConsumerSupply: sign * consumerSupply,
		ConsumerVat:    sign * consumerVat,
		ConsumerTotal:  sign * consumerTotal,
		OrderUnitPrice: orderUnitPrice,
		OrderSupply:    sign * orderSupply,
		OrderVat:       sign * orderVat,
		OrderTotal:     sign * orderTotal,
	}
}

func roundHalf(v float64) int64 {
	return int64(math.Round(v))
}
