package demand

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// maxStockOutPrecision bounds 10^precision well inside float64's exact integers.
const maxStockOutPrecision = 9

// StockOut is an availability mask in [0, 1]. Each sample is a binomial draw
// Binomial(10^Precision, 1-ProbaOOS) scaled back by 10^Precision; draws
// above the in-stock probability are treated as fully back in stock (1.0).
type StockOut struct {
	ProbaOOS  float64
	Precision int
}

// NewStockOut requires probaOOS in [0, 1] and precision in [0, 9].
func NewStockOut(probaOOS float64, precision int) (*StockOut, error) {
	if !(probaOOS >= 0 && probaOOS <= 1) {
		return nil, configErrorf(ErrOutOfRange, string(KindStockOut), "proba_oos",
			"must be in [0, 1], got %v", probaOOS)
	}
	if precision < 0 || precision > maxStockOutPrecision {
		return nil, configErrorf(ErrOutOfRange, string(KindStockOut), "precision",
			"must be in [0, %d], got %d", maxStockOutPrecision, precision)
	}
	return &StockOut{ProbaOOS: probaOOS, Precision: precision}, nil
}

func (s *StockOut) Kind() Kind   { return KindStockOut }
func (s *StockOut) Name() string { return string(KindStockOut) }

func (s *StockOut) BuildOwnValues(axis DateAxis, rng *rand.Rand) ([]float64, error) {
	n := axis.NumPoints()
	inStock := 1 - s.ProbaOOS
	switch inStock {
	case 1:
		return repeat(1, n), nil
	case 0:
		return repeat(0, n), nil
	}

	trials := math.Pow(10, float64(s.Precision))
	draw := distuv.Binomial{N: trials, P: inStock, Src: rng}
	mask := make([]float64, n)
	for i := range mask {
		v := draw.Rand() / trials
		if v > inStock {
			v = 1
		}
		mask[i] = v
	}
	return mask, nil
}
