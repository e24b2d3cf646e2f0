package fixedpoint

import (
	"math"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"
)

func mulMod(field, a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), field)
}

func nativeRescale(t *testing.T, field *big.Int, cfg Config, x *big.Int) *big.Int {
	t.Helper()
	outputs := []*big.Int{new(big.Int), new(big.Int)}
	err := DivScaleHint(field, []*big.Int{new(big.Int).Set(x), cfg.Scale()}, outputs)
	require.NoError(t, err)
	return outputs[0]
}

func nativeSqrt(t *testing.T, field *big.Int, cfg Config, x *big.Int) *big.Int {
	t.Helper()
	outputs := []*big.Int{new(big.Int)}
	err := SqrtHint(field, []*big.Int{new(big.Int).Set(x), cfg.Scale()}, outputs)
	require.NoError(t, err)
	return outputs[0]
}

func TestQuantizeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	field := ecc.BN254.ScalarField()
	ulp := math.Pow(2, -float64(cfg.PrecisionBits))

	for _, x := range []float64{0, 1, -1, 0.5, -0.5, 3.141592653589793, -2.718281828459045, 1000.25, -999.75} {
		q := cfg.Quantize(field, x)
		require.InDelta(t, x, cfg.Dequantize(field, q), 2*ulp, "round trip of %v", x)

		if x < 0 {
			require.Positive(t, q.Cmp(new(big.Int).Rsh(field, 1)),
				"negative values live above the field midpoint")
		}
	}
}

func TestDivScaleHintSignedDivision(t *testing.T) {
	field := ecc.BN254.ScalarField()

	// -5 = -2*4 + 3
	minusFive := new(big.Int).Sub(field, big.NewInt(5))
	outputs := []*big.Int{new(big.Int), new(big.Int)}
	err := DivScaleHint(field, []*big.Int{minusFive, big.NewInt(4)}, outputs)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Sub(field, big.NewInt(2)), outputs[0])
	require.Equal(t, big.NewInt(3), outputs[1])

	// 11 = 2*4 + 3
	err = DivScaleHint(field, []*big.Int{big.NewInt(11), big.NewInt(4)}, outputs)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(2), outputs[0])
	require.Equal(t, big.NewInt(3), outputs[1])
}

type rescaleCircuit struct {
	Product  frontend.Variable
	Rescaled frontend.Variable
	Cfg      Config
}

func (c *rescaleCircuit) Define(api frontend.API) error {
	engine := NewEngine(api, c.Cfg)
	api.AssertIsEqual(engine.Rescale(c.Product), c.Rescaled)
	return nil
}

func TestRescaleMatchesSignedDivision(t *testing.T) {
	cfg := DefaultConfig()
	field := ecc.BN254.ScalarField()

	circuit := rescaleCircuit{Cfg: cfg}
	cs, err := frontend.Compile(field, r1cs.NewBuilder, &circuit)
	require.NoError(t, err, "compile rescale circuit")

	for _, tc := range []struct{ a, b float64 }{
		{1.5, 2.25},
		{-0.75, 3.5},
		{-2.5, -1.25},
		{0.001953125, -8.0},
	} {
		product := mulMod(field, cfg.Quantize(field, tc.a), cfg.Quantize(field, tc.b))
		rescaled := nativeRescale(t, field, cfg, product)

		assignment := rescaleCircuit{Product: product, Rescaled: rescaled, Cfg: cfg}
		witness, err := frontend.NewWitness(&assignment, field)
		require.NoError(t, err, "solve witness")
		require.NoError(t, cs.IsSolved(witness), "rescale of %v*%v should satisfy", tc.a, tc.b)

		require.InDelta(t, tc.a*tc.b, cfg.Dequantize(field, rescaled), 1e-8,
			"rescaled product should dequantize near the real product")
	}

	// an off-by-one quotient must not satisfy
	product := mulMod(field, cfg.Quantize(field, 1.5), cfg.Quantize(field, 2.25))
	wrong := new(big.Int).Add(nativeRescale(t, field, cfg, product), big.NewInt(1))
	assignment := rescaleCircuit{Product: product, Rescaled: wrong, Cfg: cfg}
	witness, err := frontend.NewWitness(&assignment, field)
	require.NoError(t, err)
	require.Error(t, cs.IsSolved(witness), "shifted quotient must not satisfy")
}

type sqrtCircuit struct {
	X    frontend.Variable
	Root frontend.Variable
	Cfg  Config
}

func (c *sqrtCircuit) Define(api frontend.API) error {
	engine := NewEngine(api, c.Cfg)
	api.AssertIsEqual(engine.Sqrt(c.X), c.Root)
	return nil
}

func TestSqrtPinsFlooredRoot(t *testing.T) {
	cfg := DefaultConfig()
	field := ecc.BN254.ScalarField()

	circuit := sqrtCircuit{Cfg: cfg}
	cs, err := frontend.Compile(field, r1cs.NewBuilder, &circuit)
	require.NoError(t, err, "compile sqrt circuit")

	for _, x := range []float64{2.0, 0.25, 9.0, 1234.5} {
		encoded := cfg.Quantize(field, x)
		root := nativeSqrt(t, field, cfg, encoded)

		assignment := sqrtCircuit{X: encoded, Root: root, Cfg: cfg}
		witness, err := frontend.NewWitness(&assignment, field)
		require.NoError(t, err, "solve witness")
		require.NoError(t, cs.IsSolved(witness), "floored root of %v should satisfy", x)

		require.InDelta(t, math.Sqrt(x), cfg.Dequantize(field, root), 1e-9)
	}

	encoded := cfg.Quantize(field, 2.0)
	wrong := new(big.Int).Add(nativeSqrt(t, field, cfg, encoded), big.NewInt(1))
	assignment := sqrtCircuit{X: encoded, Root: wrong, Cfg: cfg}
	witness, err := frontend.NewWitness(&assignment, field)
	require.NoError(t, err)
	require.Error(t, cs.IsSolved(witness), "bumped root must not satisfy")
}

type lessThanCircuit struct {
	V     frontend.Variable
	Bound uint64
	Cfg   Config
}

func (c *lessThanCircuit) Define(api frontend.API) error {
	engine := NewEngine(api, c.Cfg)
	engine.AssertLessThanConst(c.V, new(big.Int).SetUint64(c.Bound))
	return nil
}

func TestAssertLessThanConst(t *testing.T) {
	cfg := DefaultConfig()
	field := ecc.BN254.ScalarField()

	// a bound straddling a power of two
	circuit := lessThanCircuit{Bound: 3000, Cfg: cfg}
	cs, err := frontend.Compile(field, r1cs.NewBuilder, &circuit)
	require.NoError(t, err, "compile less-than circuit")

	for _, v := range []uint64{0, 1, 2047, 2999} {
		assignment := lessThanCircuit{V: v, Bound: 3000, Cfg: cfg}
		witness, err := frontend.NewWitness(&assignment, field)
		require.NoError(t, err)
		require.NoError(t, cs.IsSolved(witness), "%d should pass the bound", v)
	}

	for _, v := range []frontend.Variable{uint64(3000), uint64(4095), new(big.Int).Sub(field, big.NewInt(1))} {
		assignment := lessThanCircuit{V: v, Bound: 3000, Cfg: cfg}
		witness, err := frontend.NewWitness(&assignment, field)
		require.NoError(t, err)
		require.Error(t, cs.IsSolved(witness), "%v should fail the bound", v)
	}
}

func TestNewEngineValidatesConfig(t *testing.T) {
	field := ecc.BN254.ScalarField()

	for name, cfg := range map[string]Config{
		"zero precision": {PrecisionBits: 0, SignedBits: 120},
		"narrow signed":  {PrecisionBits: 32, SignedBits: 48},
		"field overflow": {PrecisionBits: 64, SignedBits: 200},
	} {
		broken := brokenConfigCircuit{Cfg: cfg}
		_, err := frontend.Compile(field, r1cs.NewBuilder, &broken)
		require.Error(t, err, "config %q must be rejected", name)
	}
}

type brokenConfigCircuit struct {
	X   frontend.Variable
	Cfg Config
}

func (c *brokenConfigCircuit) Define(api frontend.API) error {
	NewEngine(api, c.Cfg)
	api.AssertIsEqual(c.X, c.X)
	return nil
}
