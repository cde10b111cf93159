package operation

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

type EnvelopeChecker struct {
	common.DefaultChecker

	Envelope Envelope
	Conf     common.Config
}

func CheckEnvelopeSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EnvelopeChecker)
	if _, err = keypair.Parse(checker.Envelope.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}

	return
}

func CheckEnvelopeOverOperationsLimit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EnvelopeChecker)

	if len(checker.Envelope.B.Operations) > checker.Conf.OpsLimit {
		err = errors.OperationsLimitExceeded
		return
	}

	return
}

func CheckEnvelopeOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EnvelopeChecker)

	if len(checker.Envelope.B.Operations) < 1 {
		err = errors.InvalidEnvelope
		return
	}

	var pairs []string
	for _, op := range checker.Envelope.B.Operations {
		if !IsValidOperationType(string(op.H.Type)) {
			err = errors.UnknownOperationType
			return
		}
		if err = op.IsWellFormed(checker.Conf); err != nil {
			return
		}
		// multiple operations of the same type over the same target
		// make the envelope invalid
		if target, ok := op.B.(Targetable); ok {
			u := fmt.Sprintf("%s-%s", op.H.Type, target.TargetAddress())
			if _, found := common.InStringArray(pairs, u); found {
				err = errors.DuplicatedOperation
				return
			}

			pairs = append(pairs, u)
		}
	}

	return
}

func CheckEnvelopeHashMatch(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EnvelopeChecker)

	if checker.Envelope.B.MakeHashString() != checker.Envelope.H.Hash {
		err = errors.HashDoesNotMatch
		return
	}

	return
}

func CheckEnvelopeVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EnvelopeChecker)

	var kp keypair.KP
	if kp, err = keypair.Parse(checker.Envelope.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}
	err = kp.Verify(
		append(checker.Conf.NetworkID, []byte(checker.Envelope.H.Hash)...),
		base58.Decode(checker.Envelope.H.Signature),
	)
	if err != nil {
		err = errors.SignatureVerificationFailed
		return
	}
	return
}
