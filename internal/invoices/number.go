package invoices

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateNumber produces a display invoice number of the form
// INV-YYYYMM-XXXX. The random suffix keeps numbers unguessable without a
// database sequence; the unique index on the column catches the rare
// collision.
func GenerateNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format("200601"), rand.IntN(10000))
}
