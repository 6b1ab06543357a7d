package domain

// Intent is the donor's amount selection for one checkout attempt. Amounts
// are whole rupees; the intent lives only in memory and is rebuilt whenever
// the donor changes the preset, the custom amount, or the tip.
type Intent struct {
	Amount     int64 `json:"amount"`
	TipPercent int   `json:"tip_percent"`
}

// Tip is round(Amount * TipPercent / 100) with halves rounded up, matching
// the checkout UI's arithmetic exactly.
func (i Intent) Tip() int64 {
	if i.Amount <= 0 || i.TipPercent <= 0 {
		return 0
	}
	return (i.Amount*int64(i.TipPercent) + 50) / 100
}

func (i Intent) Total() int64 {
	return i.Amount + i.Tip()
}

// TotalMinor is the total in minor currency units (paise), the unit the
// gateway order is denominated in.
func (i Intent) TotalMinor() int64 {
	return i.Total() * 100
}
