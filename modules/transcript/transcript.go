package transcript

import (
	"SVDVerifierCircuit/modules/linalg"

	"github.com/consensys/gnark/frontend"
)

// FieldHasher describes the behavior of a field hasher in a Fiat-Shamir
// transcript. The implementation and instantiation should be considered to
// be immutable, as the functionality of sponge is managed by a Transcript
// instance.
type FieldHasher interface {
	// StateCapacity returns how many field elements can be used in a state
	// dumped by the HashToState method.
	StateCapacity() uint

	// HashToState hashes a bunch of field elements to a "hash state",
	// namely a slice of field elements, can be used up to StateCapacity.
	HashToState(fs ...frontend.Variable) []frontend.Variable
}

// Transcript absorbs the statement of the proof and squeezes verification
// challenges from it, so every challenge is bound to all the data appended
// before it was drawn.
type Transcript struct {
	api frontend.API

	// The hash function
	hasher FieldHasher

	// The values to feed the hash function
	dataPool []frontend.Variable

	// The hashState
	hashState []frontend.Variable
}

func NewTranscript(api frontend.API) *Transcript {
	hasher := NewMiMCFieldHasher(api)

	return &Transcript{
		api:      api,
		hasher:   &hasher,
		dataPool: make([]frontend.Variable, 0),
		hashState: func() []frontend.Variable {
			initState := make([]frontend.Variable, hasher.StateCapacity())
			for i := range int(hasher.StateCapacity()) {
				initState[i] = 0
			}
			return initState
		}(),
	}
}

func (t *Transcript) AppendF(f frontend.Variable) {
	t.dataPool = append(t.dataPool, f)
}

func (t *Transcript) AppendFs(fs ...frontend.Variable) {
	t.dataPool = append(t.dataPool, fs...)
}

// AppendMatrix absorbs every entry of the matrix in row-major order.
func (t *Transcript) AppendMatrix(m linalg.Matrix) {
	for i := 0; i < m.NumRows(); i++ {
		t.AppendFs(m.Row(i).Elements()...)
	}
}

// ChallengeF squeezes a single field element out of everything appended so
// far.
func (t *Transcript) ChallengeF() frontend.Variable {
	t.HashAndReturnState()
	return t.hashState[0]
}

func (t *Transcript) HashAndReturnState() []frontend.Variable {
	if len(t.dataPool) != 0 {
		t.hashState = t.hasher.HashToState(append(t.hashState, t.dataPool...)...)
		t.dataPool = nil
	} else {
		t.hashState = t.hasher.HashToState(t.hashState...)
	}

	return t.hashState
}
