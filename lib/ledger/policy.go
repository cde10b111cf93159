package ledger

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/storage"
)

// EffectiveRequirementOf resolves the stake threshold that applies to
// the account: its own override when one is set, the ledger wide
// requirement otherwise. A zero override means "no override", so the
// only way to exempt an account from staking entirely is a zero
// global requirement.
func EffectiveRequirementOf(s *State, ac *Account) common.Amount {
	if ac.RequiredOverride != common.Amount(0) {
		return ac.RequiredOverride
	}
	return s.GlobalRequired
}

// EffectiveRequirement is the storage backed variant, for callers that
// only hold an address.
func EffectiveRequirement(st *storage.LevelDBBackend, address string) (common.Amount, error) {
	s, err := GetState(st)
	if err != nil {
		return common.Amount(0), err
	}

	ac, err := GetOrNewAccount(st, address)
	if err != nil {
		return common.Amount(0), err
	}

	return EffectiveRequirementOf(s, ac), nil
}
