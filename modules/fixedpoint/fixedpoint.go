// Package fixedpoint encodes real numbers as scaled field elements and
// extends a constraint-building session with the arithmetic the encoding
// needs: the one mandatory rescale after a multiplication, a scaled square
// root, and the range assertions every tolerance comparison rests on.
//
// A real x is represented by the integer closest to x * 2^P truncated toward
// zero, embedded into the field with negatives as p - |x| * 2^P. Multiplying
// two encoded values therefore yields a 2^(2P)-scaled result, which must be
// rescaled exactly once before it interacts with 2^P-scaled values again.
package fixedpoint

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/cmp"
	"github.com/consensys/gnark/std/rangecheck"
)

// floatPrec is the mantissa width used for native real <-> field conversions.
const floatPrec = 200

// Config carries the runtime quantization parameters shared by every entity
// in one constraint-building session.
//
// PrecisionBits is the binary scaling exponent P. SignedBits bounds the bit
// length of the magnitude of any signed intermediate the codec touches; the
// shifted range assertions add 2^SignedBits before decomposing, so
// SignedBits + PrecisionBits + 2 must stay below the field bit length.
type Config struct {
	PrecisionBits uint
	SignedBits    uint
}

// DefaultConfig returns the parameters the reference pipeline runs with.
func DefaultConfig() Config {
	return Config{PrecisionBits: 32, SignedBits: 120}
}

// Scale returns the quantization scale S = 2^P.
func (cfg Config) Scale() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), cfg.PrecisionBits)
}

// Quantize maps a real value to its fixed-point representative in the field,
// truncating toward zero and embedding negatives as field complements.
func (cfg Config) Quantize(field *big.Int, x float64) *big.Int {
	scaled := new(big.Float).SetPrec(floatPrec).SetFloat64(x)
	scaled.Mul(scaled, new(big.Float).SetPrec(floatPrec).SetInt(cfg.Scale()))

	q, _ := scaled.Int(nil)
	if q.Sign() < 0 {
		q.Add(q, field)
	}
	return q
}

// Dequantize recovers the real value behind a field representative, reading
// anything above the field midpoint as negative.
func (cfg Config) Dequantize(field *big.Int, v *big.Int) float64 {
	signed := new(big.Int).Set(v)
	if signed.Cmp(new(big.Int).Rsh(field, 1)) > 0 {
		signed.Sub(signed, field)
	}

	f := new(big.Float).SetPrec(floatPrec).SetInt(signed)
	f.Quo(f, new(big.Float).SetPrec(floatPrec).SetInt(cfg.Scale()))
	out, _ := f.Float64()
	return out
}

// QuantizedTolerance scales a non-negative real tolerance into the encoded
// domain, flooring.
func (cfg Config) QuantizedTolerance(tol float64) *big.Int {
	if tol < 0 {
		panic("fixedpoint: tolerance must be non-negative")
	}
	scaled := new(big.Float).SetPrec(floatPrec).SetFloat64(tol)
	scaled.Mul(scaled, new(big.Float).SetPrec(floatPrec).SetInt(cfg.Scale()))

	q, _ := scaled.Int(nil)
	return q
}

// Engine extends a constraint-building session with fixed-point arithmetic at
// the configured scale. The session is owned by exactly one caller at a time;
// the zero value is unusable, construct with NewEngine.
type Engine struct {
	Config
	frontend.API

	rc frontend.Rangechecker
}

// NewEngine wires the codec onto a constraint builder. The configuration is
// validated once here so every later operation can rely on it. Precondition
// violations panic: they are caller errors, not proof failures.
func NewEngine(api frontend.API, cfg Config) Engine {
	if cfg.PrecisionBits == 0 {
		panic("fixedpoint: precision must be positive")
	}
	if cfg.SignedBits < 2*cfg.PrecisionBits {
		panic("fixedpoint: signed range cannot hold a product of two scaled values")
	}
	fieldBits := uint(api.Compiler().FieldBitLen())
	if cfg.SignedBits+cfg.PrecisionBits+2 >= fieldBits {
		panic("fixedpoint: signed range does not fit the field")
	}

	return Engine{Config: cfg, API: api, rc: rangecheck.New(api)}
}

// Rescale divides a 2^(2P)-scaled value by S, the rescale owed after a field
// multiplication of two encoded values. The quotient comes from the solver
// and is pinned by x == q*S + r together with r below S and q inside the
// signed range, which admits exactly one (q, r) pair.
func (e Engine) Rescale(x frontend.Variable) frontend.Variable {
	scale := e.Scale()
	qr, err := e.Compiler().NewHint(DivScaleHint, 2, x, scale)
	if err != nil {
		panic(err.Error())
	}
	q, r := qr[0], qr[1]

	e.AssertIsEqual(x, e.Add(e.Mul(q, scale), r))
	e.rc.Check(r, int(e.PrecisionBits))
	e.AssertSignedRange(q)

	return q
}

// Sqrt returns the encoded square root of a non-negative encoded value:
// y = floor(sqrt(S*x)), so that y approximates sqrt(x/S) at scale S. The
// flooring costs up to one unit in the last place on top of the input's own
// quantization error; callers that need tight bounds should stay with
// squared quantities.
func (e Engine) Sqrt(x frontend.Variable) frontend.Variable {
	e.rc.Check(x, int(e.SignedBits))

	out, err := e.Compiler().NewHint(SqrtHint, 1, x, e.Scale())
	if err != nil {
		panic(err.Error())
	}
	y := out[0]
	e.rc.Check(y, int((e.SignedBits+e.PrecisionBits)/2+1))

	// y^2 <= S*x < (y+1)^2 leaves one admissible root
	sx := e.Mul(x, e.Scale())
	next := e.Add(y, 1)
	diffBound := new(big.Int).Lsh(big.NewInt(1), e.SignedBits+e.PrecisionBits+2)
	comparator := cmp.NewBoundedComparator(e.API, diffBound, false)
	comparator.AssertIsLessEq(e.Mul(y, y), sx)
	comparator.AssertIsLess(sx, e.Mul(next, next))

	return y
}

// AssertBitLength range-checks v into [0, 2^bits).
func (e Engine) AssertBitLength(v frontend.Variable, bits uint) {
	e.rc.Check(v, int(bits))
}

// AssertSignedRange constrains v to a signed magnitude below 2^SignedBits:
// either v or its field complement must fit the bound. Shifting by
// 2^SignedBits folds both branches into one non-negative range check.
func (e Engine) AssertSignedRange(v frontend.Variable) {
	offset := new(big.Int).Lsh(big.NewInt(1), e.SignedBits)
	e.rc.Check(e.Add(v, offset), int(e.SignedBits+1))
}

// AssertLessThanConst asserts v lies in [0, bound) for a positive constant
// bound that need not be a power of two. The bit-length check pins v near
// the bound first so the bounded comparison cannot wrap.
func (e Engine) AssertLessThanConst(v frontend.Variable, bound *big.Int) {
	if bound.Sign() <= 0 {
		panic("fixedpoint: comparison bound must be positive")
	}
	bits := uint(bound.BitLen())
	e.rc.Check(v, int(bits))

	diffBound := new(big.Int).Lsh(big.NewInt(1), bits+1)
	cmp.NewBoundedComparator(e.API, diffBound, false).AssertIsLess(v, bound)
}
