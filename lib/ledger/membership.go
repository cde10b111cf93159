package ledger

// Membership never changes on its own. Stake mutations and
// requirement changes call Reevaluate to apply the downgrade rule;
// the only promotions are an explicit join or an administrator add.

// MeetsRequirement reports whether the account's stake covers its
// effective requirement.
func (ac *Account) MeetsRequirement(s *State) bool {
	return ac.Staked >= EffectiveRequirementOf(s, ac)
}

// Promote marks the account as a member and latches EverJoined, which
// stays true for the life of the record.
func (ac *Account) Promote() {
	ac.IsMember = true
	ac.EverJoined = true
}

// Demote clears membership. EverJoined is untouched.
func (ac *Account) Demote() {
	ac.IsMember = false
}

// Reevaluate drops membership when the stake sits below the effective
// requirement, and reports whether it did. It never promotes:
// regaining the threshold after a demotion still requires an explicit
// join.
func (ac *Account) Reevaluate(s *State) (demoted bool) {
	if !ac.IsMember {
		return false
	}
	if ac.MeetsRequirement(s) {
		return false
	}

	ac.Demote()
	return true
}
