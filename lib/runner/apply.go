package runner

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

// applyOperation dispatches one operation by type, then persists its
// receipt. The membership rules live here: stake mutations and
// requirement changes demote through Reevaluate, and nothing promotes
// except an explicit join or an administrator add.
func (ex *Executor) applyOperation(ts *storage.LevelDBBackend, ev operation.Envelope, op operation.Operation, result *applyResult) (receipt ledger.Receipt, err error) {
	receipt = ledger.NewReceiptFromOperation(op, ev)

	switch op.H.Type {
	case operation.TypeStake:
		body, ok := op.B.(operation.Stake)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyStake(ts, ev.Source(), body, &receipt, result)
	case operation.TypeUnstake:
		body, ok := op.B.(operation.Unstake)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyUnstake(ts, ev.Source(), body, &receipt, result)
	case operation.TypeJoin:
		if _, ok := op.B.(operation.Join); !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyJoin(ts, ev.Source(), &receipt, result)
	case operation.TypeSync:
		body, ok := op.B.(operation.Sync)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applySync(ts, body, &receipt, result)
	case operation.TypeAdminAddMembership:
		body, ok := op.B.(operation.AdminAddMembership)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyAdminAddMembership(ts, body, &receipt, result)
	case operation.TypeAdminRemoveMembership:
		body, ok := op.B.(operation.AdminRemoveMembership)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyAdminRemoveMembership(ts, body, &receipt, result)
	case operation.TypeSetRequirement:
		body, ok := op.B.(operation.SetRequirement)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applySetRequirement(ts, body, &receipt, result)
	case operation.TypeSetGlobalRequirement:
		body, ok := op.B.(operation.SetGlobalRequirement)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applySetGlobalRequirement(ts, body, &receipt, result)
	case operation.TypeTransferAdministration:
		body, ok := op.B.(operation.TransferAdministration)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyTransferAdministration(ts, body, &receipt, result)
	case operation.TypeWithdrawExcess:
		body, ok := op.B.(operation.WithdrawExcess)
		if !ok {
			err = errors.UnknownOperationType
			return
		}
		err = ex.applyWithdrawExcess(ts, body, &receipt, result)
	default:
		err = errors.UnknownOperationType
		return
	}
	if err != nil {
		return
	}

	if err = receipt.Save(ts); err != nil {
		return
	}

	return
}

// applyStake credits the source's stake. Membership is untouched:
// holding enough does not make a member, joining does.
func (ex *Executor) applyStake(ts *storage.LevelDBBackend, source string, body operation.Stake, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, source); err != nil {
		return
	}

	if err = ac.Credit(body.Amount); err != nil {
		return
	}
	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)
	result.notify(ledger.NewStakedNotification(source, body.Amount, ac.Staked), receipt)

	return
}

// applyUnstake debits the source's stake, re-evaluates membership
// against the post-debit balance, and only then pays the amount out
// through the latched transfer. A failed transfer fails the whole
// envelope; the enclosing transaction throws the debit away.
func (ex *Executor) applyUnstake(ts *storage.LevelDBBackend, source string, body operation.Unstake, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, source); err != nil {
		return
	}

	if err = ac.Debit(body.Amount); err != nil {
		return
	}
	demoted := ac.Reevaluate(s)
	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)
	result.notify(ledger.NewUnstakedNotification(source, body.Amount, ac.Staked), receipt)
	if demoted {
		result.notify(ledger.NewLeftNotification(source), receipt)
	}

	return ex.transferOut(source, body.Amount)
}

// applyJoin promotes the source when its stake covers the effective
// requirement. Joining again while a member is a no-op.
func (ex *Executor) applyJoin(ts *storage.LevelDBBackend, source string, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, source); err != nil {
		return
	}

	required := ledger.EffectiveRequirementOf(s, ac)
	receipt.Requirement = required

	if ac.IsMember {
		return
	}

	if ac.Staked < required {
		return errors.InsufficientStake.Clone().SetData(
			"staked", ac.Staked,
		).SetData(
			"required", required,
		)
	}

	ac.Promote()
	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	result.notify(ledger.NewJoinedNotification(source, required), receipt)

	return
}

// applySync re-evaluates any account on demand. It is the only cure
// for the staleness a global requirement change leaves behind, and it
// never promotes.
func (ex *Executor) applySync(ts *storage.LevelDBBackend, body operation.Sync, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, body.Target); err != nil {
		return
	}

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)

	if demoted := ac.Reevaluate(s); !demoted {
		return
	}

	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	result.notify(ledger.NewLeftNotification(body.Target), receipt)

	return
}

// applyAdminAddMembership forces the target in, bypassing the stake
// check.
func (ex *Executor) applyAdminAddMembership(ts *storage.LevelDBBackend, body operation.AdminAddMembership, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, body.Target); err != nil {
		return
	}

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)

	if ac.IsMember {
		return errors.AlreadyMember
	}

	ac.Promote()
	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	result.notify(ledger.NewJoinedNotification(body.Target, receipt.Requirement), receipt)

	return
}

// applyAdminRemoveMembership forces the target out, whatever it
// holds.
func (ex *Executor) applyAdminRemoveMembership(ts *storage.LevelDBBackend, body operation.AdminRemoveMembership, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, body.Target); err != nil {
		return
	}

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)

	if !ac.IsMember {
		return errors.NotMember
	}

	ac.Demote()
	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	result.notify(ledger.NewLeftNotification(body.Target), receipt)

	return
}

// applySetRequirement stores the target's override (zero clears it)
// and immediately re-evaluates: tightening under a member's balance
// demotes on the spot, while raising or clearing never promotes.
func (ex *Executor) applySetRequirement(ts *storage.LevelDBBackend, body operation.SetRequirement, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	var ac *ledger.Account
	if ac, err = ledger.GetOrNewAccount(ts, body.Target); err != nil {
		return
	}

	ac.RequiredOverride = body.Amount
	demoted := ac.Reevaluate(s)

	if err = ac.Save(ts); err != nil {
		return
	}
	result.saved(ac)

	receipt.Requirement = ledger.EffectiveRequirementOf(s, ac)
	result.notify(ledger.NewRequirementSetNotification(body.Target, body.Amount), receipt)
	if demoted {
		result.notify(ledger.NewLeftNotification(body.Target), receipt)
	}

	return
}

// applySetGlobalRequirement stores the ledger wide requirement. No
// sweep of existing members happens here: accounts are not
// enumerable by the core, so members below the new bar stay members
// until a sync or one of their own stake mutations catches them.
func (ex *Executor) applySetGlobalRequirement(ts *storage.LevelDBBackend, body operation.SetGlobalRequirement, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	s.GlobalRequired = body.Amount
	if err = s.Save(ts); err != nil {
		return
	}

	receipt.Requirement = body.Amount
	result.notify(ledger.NewGlobalRequirementSetNotification(body.Amount), receipt)

	return
}

// applyTransferAdministration swaps the administrator unilaterally
// and immediately.
func (ex *Executor) applyTransferAdministration(ts *storage.LevelDBBackend, body operation.TransferAdministration, receipt *ledger.Receipt, result *applyResult) (err error) {
	var s *ledger.State
	if s, err = ledger.GetState(ts); err != nil {
		return
	}

	previous := s.Administrator
	s.Administrator = body.Target
	if err = s.Save(ts); err != nil {
		return
	}

	result.notify(ledger.NewAdminTransferredNotification(previous, body.Target), receipt)

	return
}

// applyWithdrawExcess recovers value the agent holds beyond the sum
// of the roster's stakes. The caller supplies the roster; the ledger
// refuses to enumerate accounts on its own for this.
func (ex *Executor) applyWithdrawExcess(ts *storage.LevelDBBackend, body operation.WithdrawExcess, receipt *ledger.Receipt, result *applyResult) (err error) {
	if len(body.Roster) < 1 {
		return errors.RosterRequired
	}

	if ex.agent == nil {
		return errors.TransferAgentNotReady
	}

	tracked := common.Amount(0)
	for _, address := range body.Roster {
		var ac *ledger.Account
		if ac, err = ledger.GetOrNewAccount(ts, address); err != nil {
			return
		}
		if tracked, err = tracked.Add(ac.Staked); err != nil {
			return
		}
	}

	var held common.Amount
	if held, err = ex.agent.HeldBalance(); err != nil {
		if e, ok := err.(*errors.Error); ok {
			return e
		}
		return errors.TransferAgentQueryFailed.Clone().SetData("cause", err.Error())
	}

	excess := common.Amount(0)
	if held > tracked {
		excess = held.MustSub(tracked)
	}

	if body.Amount > excess {
		return errors.ExcessUnderflow.Clone().SetData(
			"excess", excess,
		).SetData(
			"requested", body.Amount,
		)
	}

	result.notify(ledger.NewExcessWithdrawnNotification(body.Target, body.Amount), receipt)

	return ex.transferOut(body.Target, body.Amount)
}
