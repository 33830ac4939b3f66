package draft

import "github.com/colegiosys/recibos-api/internal/domain/enum"

// Total sums the base value of every resolved concept line across the
// draft. Unresolved concept lines and concept ids missing from the
// catalog contribute zero. Pure and linear in line count, cheap enough
// to call on every read.
func Total(d *Draft, catalog *Catalog) int64 {
	var total int64
	for _, sl := range d.StudentLines {
		for _, cl := range sl.ConceptLines {
			if cl.ConceptID == nil {
				continue
			}
			if concept := catalog.Concept(*cl.ConceptID); concept != nil {
				total += concept.BaseValue
			}
		}
	}
	return total
}

// OutstandingBalance returns the amount left owing: zero for full
// payment, max(0, total - partial amount) for partial. Never negative.
func OutstandingBalance(d *Draft, catalog *Catalog) int64 {
	if d.PaymentMode != enum.PaymentModePartial {
		return 0
	}
	var paid int64
	if d.PartialAmount != nil {
		paid = *d.PartialAmount
	}
	if balance := Total(d, catalog) - paid; balance > 0 {
		return balance
	}
	return 0
}
