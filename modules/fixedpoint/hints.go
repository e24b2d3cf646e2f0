package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(DivScaleHint, SqrtHint)
}

// DivScaleHint computes the floored signed quotient and non-negative
// remainder of a field value by the scale: x = q*S + r with 0 <= r < S.
// Values above the field midpoint are read as negative, and a negative
// quotient goes back out as its field complement. The caller constrains the
// outputs; nothing here is trusted.
func DivScaleHint(field *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 2 {
		return fmt.Errorf("div-scale hint wants 2 inputs and 2 outputs, got %d and %d", len(inputs), len(outputs))
	}
	scale := inputs[1]
	if scale.Sign() <= 0 {
		return fmt.Errorf("div-scale hint wants a positive scale")
	}

	x := new(big.Int).Set(inputs[0])
	if x.Cmp(new(big.Int).Rsh(field, 1)) > 0 {
		x.Sub(x, field)
	}

	q, r := new(big.Int), new(big.Int)
	q.DivMod(x, scale, r)
	if q.Sign() < 0 {
		q.Add(q, field)
	}

	outputs[0].Set(q)
	outputs[1].Set(r)
	return nil
}

// SqrtHint computes floor(sqrt(S*x)) treating x as a non-negative integer.
func SqrtHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 1 {
		return fmt.Errorf("sqrt hint wants 2 inputs and 1 output, got %d and %d", len(inputs), len(outputs))
	}

	outputs[0].Sqrt(new(big.Int).Mul(inputs[0], inputs[1]))
	return nil
}
