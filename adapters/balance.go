package adapters

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Balancer is implemented by adapters that can report the connected EVM
// account's native balance for the portfolio view.
type Balancer interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
}

func errNotInstalled(wallet string) error {
	return fmt.Errorf("%s not installed", wallet)
}
