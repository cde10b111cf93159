package runner

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

// ExecuteChecker validates an envelope against the current ledger
// state before any operation is applied. Storage is the executor's
// open write transaction, so the checks and the apply share one
// consistent view.
type ExecuteChecker struct {
	common.DefaultChecker

	Storage  *storage.LevelDBBackend
	Envelope operation.Envelope
	Conf     common.Config

	Source *ledger.Account
	State  *ledger.State
}

var ExecuteCheckerFuncs = []common.CheckerFunc{
	CheckEnvelopeWellFormed,
	CheckStateInitialized,
	CheckEnvelopeNotApplied,
	CheckSourceSequenceID,
	CheckAdminAuthority,
}

// CheckEnvelopeWellFormed verifies hash, signature and per operation
// validity. Nothing malformed gets further than this.
func CheckEnvelopeWellFormed(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecuteChecker)
	return checker.Envelope.IsWellFormed(checker.Conf)
}

// CheckStateInitialized loads the registry record; before genesis
// there is nothing to apply against.
func CheckStateInitialized(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecuteChecker)
	checker.State, err = ledger.GetState(checker.Storage)
	return
}

// CheckEnvelopeNotApplied rejects an exact replay of an envelope that
// already went through.
func CheckEnvelopeNotApplied(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecuteChecker)

	var applied bool
	if applied, err = ledger.ExistsEnvelopeApplied(checker.Storage, checker.Envelope.GetHash()); err != nil {
		return
	}
	if applied {
		err = errors.EnvelopeAlreadyApplied
	}

	return
}

// CheckSourceSequenceID requires the envelope to carry the source
// account's current sequence id; anything else is stale or from the
// future.
func CheckSourceSequenceID(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecuteChecker)

	if checker.Source, err = ledger.GetOrNewAccount(checker.Storage, checker.Envelope.Source()); err != nil {
		return
	}

	if !checker.Envelope.IsValidSequenceID(checker.Source.SequenceID) {
		err = errors.InvalidSequenceID.Clone().SetData(
			"expected", checker.Source.SequenceID,
		)
	}

	return
}

// CheckAdminAuthority requires the source to be the administrator
// when the envelope carries administrator operations.
func CheckAdminAuthority(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecuteChecker)

	if !checker.Envelope.HasAdminOperation() {
		return
	}

	if !checker.State.IsAdministrator(checker.Envelope.Source()) {
		err = errors.NotAdministrator
	}

	return
}
