package operation

import (
	"math/rand"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
)

func TestMakeStake(amount int) Operation {
	for amount < 0 {
		amount = rand.Intn(5000) + 1
	}

	return Operation{
		H: Header{
			Type: TypeStake,
		},
		B: Stake{
			Amount: common.Amount(amount),
		},
	}
}

func TestMakeUnstake(amount int) Operation {
	for amount < 0 {
		amount = rand.Intn(5000) + 1
	}

	return Operation{
		H: Header{
			Type: TypeUnstake,
		},
		B: Unstake{
			Amount: common.Amount(amount),
		},
	}
}

func TestMakeJoin() Operation {
	return Operation{
		H: Header{
			Type: TypeJoin,
		},
		B: Join{},
	}
}

func TestMakeSync(target string) Operation {
	return Operation{
		H: Header{
			Type: TypeSync,
		},
		B: Sync{
			Target: target,
		},
	}
}

// TestMakeEnvelope builds a signed envelope holding the given
// operations, from a fresh keypair with sequence id 0.
func TestMakeEnvelope(networkID []byte, ops ...Operation) (*keypair.Full, Envelope) {
	kp := keypair.Random()

	if len(ops) < 1 {
		ops = []Operation{TestMakeStake(-1)}
	}

	ev, _ := NewEnvelope(kp.Address(), 0, ops...)
	ev.Sign(kp, networkID)

	return kp, ev
}

// TestMakeEnvelopeWithKeypair builds a signed envelope from a known
// keypair and sequence id.
func TestMakeEnvelopeWithKeypair(networkID []byte, kp *keypair.Full, sequenceID uint64, ops ...Operation) Envelope {
	ev, _ := NewEnvelope(kp.Address(), sequenceID, ops...)
	ev.Sign(kp, networkID)

	return ev
}
