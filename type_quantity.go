package advisor

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Quantity is a number of units of an instrument.
//
// Units are whole: the simulator never trades fractions.
type Quantity int64

func (q Quantity) decimal() decimal.Decimal { return decimal.NewFromInt(int64(q)) }
func (q Quantity) IsPositive() bool         { return q > 0 }
func (q Quantity) String() string           { return strconv.FormatInt(int64(q), 10) }
