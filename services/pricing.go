package services

import (
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/utils"
	"github.com/shopspring/decimal"
)

// Pricing rules for detail pesanan. All money values are fixed-point
// decimals with two fractional digits; comparisons are exact, never
// float-epsilon.

// ComputeLineTotal is unit price times quantity, rounded to the currency
// precision.
func ComputeLineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ValidateLineTotal accepts a client-supplied total only when it equals the
// current menu price times quantity exactly.
func ValidateLineTotal(unitPrice decimal.Decimal, quantity int, supplied decimal.Decimal) error {
	expected := ComputeLineTotal(unitPrice, quantity)
	if !supplied.Round(2).Equal(expected) {
		return utils.NewAppError(utils.KindTotalMismatch,
			"harga total tidak sesuai, expected: %s, got: %s", expected, supplied)
	}
	return nil
}

// RecomputeLineTotal rederives a line total after a quantity change. The
// current menu price is authoritative; whatever total the row held before
// is discarded.
func RecomputeLineTotal(unitPrice decimal.Decimal, newQuantity int) decimal.Decimal {
	return ComputeLineTotal(unitPrice, newQuantity)
}

// PesananTotal is the aggregate over an order's line items.
type PesananTotal struct {
	IDPesanan   uint            `json:"id_pesanan"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
	ItemCount   int             `json:"item_count"`
}

// AggregatePesananTotal sums totals and quantities over the given line
// items. An order without items yields zero values.
func AggregatePesananTotal(idPesanan uint, details []models.DetailPesanan) PesananTotal {
	total := PesananTotal{IDPesanan: idPesanan, TotalAmount: decimal.Zero}
	for _, d := range details {
		total.TotalAmount = total.TotalAmount.Add(d.HargaTotal)
		total.TotalItems += d.Jumlah
	}
	total.ItemCount = len(details)
	return total
}
