package metadata

import "fmt"

type StockStatus string

const (
	StockEmpty  StockStatus = "empty"
	StockLow    StockStatus = "low"
	StockNormal StockStatus = "normal"
)

func NewStockStatus(value string) (StockStatus, error) {
	status := StockStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid stock status: %s", value)
	}
	return status, nil
}

// StockStatusFor classifies a quantity against its minimum. A zero minimum
// disables the low band, so only an empty cell is flagged.
func StockStatusFor(quantity, minQuantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockEmpty
	case minQuantity > 0 && quantity <= minQuantity:
		return StockLow
	default:
		return StockNormal
	}
}

func (s StockStatus) isValid() bool {
	switch s {
	case StockEmpty, StockLow, StockNormal:
		return true
	default:
		return false
	}
}
