package models

import "github.com/shopspring/decimal"

// Amounts marshal as JSON numbers rather than quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
