package operation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/errors"
)

func TestIsValidOperationType(t *testing.T) {
	require.True(t, IsValidOperationType("stake"))
	require.True(t, IsValidOperationType("withdraw-excess"))
	require.False(t, IsValidOperationType("payment"))
}

func TestOperationClassification(t *testing.T) {
	require.True(t, IsAdminOperation(TypeSetGlobalRequirement))
	require.True(t, IsAdminOperation(TypeWithdrawExcess))
	require.False(t, IsAdminOperation(TypeStake))
	require.False(t, IsAdminOperation(TypeJoin))

	require.True(t, IsGuardedOperation(TypeUnstake))
	require.True(t, IsGuardedOperation(TypeWithdrawExcess))
	require.False(t, IsGuardedOperation(TypeStake))
	require.False(t, IsGuardedOperation(TypeSync))
}

func TestStakeIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()

	{
		op := NewStake(common.Amount(100))
		require.NoError(t, op.IsWellFormed(conf))
	}

	{ // zero amount is rejected
		op := NewStake(common.Amount(0))
		require.Equal(t, errors.ZeroAmount, op.IsWellFormed(conf))
	}
}

func TestUnstakeIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()

	require.NoError(t, NewUnstake(common.Amount(1)).IsWellFormed(conf))
	require.Equal(t, errors.ZeroAmount, NewUnstake(common.Amount(0)).IsWellFormed(conf))
}

func TestSyncIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()

	{
		op := NewSync(keypair.Random().Address())
		require.NoError(t, op.IsWellFormed(conf))
	}

	{
		op := NewSync("")
		require.Equal(t, errors.ZeroIdentity, op.IsWellFormed(conf))
	}

	{
		op := NewSync("not-an-address")
		require.Equal(t, errors.BadPublicAddress, op.IsWellFormed(conf))
	}
}

func TestSetRequirementIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()

	{ // zero amount clears the override, so it is acceptable
		op := NewSetRequirement(keypair.Random().Address(), common.Amount(0))
		require.NoError(t, op.IsWellFormed(conf))
	}

	{
		op := NewSetRequirement("GINVALID", common.Amount(10))
		require.Equal(t, errors.BadPublicAddress, op.IsWellFormed(conf))
	}
}

func TestTransferAdministrationIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()

	require.NoError(t, NewTransferAdministration(keypair.Random().Address()).IsWellFormed(conf))
	require.Equal(t, errors.ZeroIdentity, NewTransferAdministration("").IsWellFormed(conf))
}

func TestWithdrawExcessIsWellFormed(t *testing.T) {
	conf := common.NewTestConfig()
	target := keypair.Random().Address()

	{ // an empty roster is well formed, the refusal happens at execution
		op := NewWithdrawExcess(target, common.Amount(10), nil)
		require.NoError(t, op.IsWellFormed(conf))
	}

	{
		roster := []string{keypair.Random().Address(), keypair.Random().Address()}
		op := NewWithdrawExcess(target, common.Amount(10), roster)
		require.NoError(t, op.IsWellFormed(conf))
	}

	{
		op := NewWithdrawExcess(target, common.Amount(0), nil)
		require.Equal(t, errors.ZeroAmount, op.IsWellFormed(conf))
	}

	{ // duplicated roster entries
		address := keypair.Random().Address()
		op := NewWithdrawExcess(target, common.Amount(10), []string{address, address})
		err := op.IsWellFormed(conf)
		require.Error(t, err)
		require.Equal(t, errors.InvalidOperation.Code, err.(*errors.Error).Code)
	}

	{ // garbage in the roster
		op := NewWithdrawExcess(target, common.Amount(10), []string{"garbage"})
		err := op.IsWellFormed(conf)
		require.Error(t, err)
		require.Equal(t, errors.BadPublicAddress.Code, err.(*errors.Error).Code)
	}
}

// an operation must unmarshal back into its concrete body type
func TestOperationUnmarshalDispatch(t *testing.T) {
	target := keypair.Random().Address()

	cases := []Operation{
		TestMakeStake(500),
		TestMakeUnstake(300),
		TestMakeJoin(),
		TestMakeSync(target),
		{H: Header{Type: TypeAdminAddMembership}, B: AdminAddMembership{Target: target}},
		{H: Header{Type: TypeSetRequirement}, B: SetRequirement{Target: target, Amount: common.Amount(10)}},
		{H: Header{Type: TypeSetGlobalRequirement}, B: SetGlobalRequirement{Amount: common.Amount(10)}},
		{H: Header{Type: TypeWithdrawExcess}, B: WithdrawExcess{Target: target, Amount: common.Amount(10), Roster: []string{target}}},
	}

	for _, op := range cases {
		encoded, err := json.Marshal(op)
		require.NoError(t, err)

		var decoded Operation
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		require.Equal(t, op.H.Type, decoded.H.Type)
		require.Equal(t, op.B, decoded.B)
	}
}

func TestOperationUnmarshalUnknownType(t *testing.T) {
	var decoded Operation
	err := json.Unmarshal([]byte(`{"H": {"type": "payment"}, "B": {}}`), &decoded)
	require.Equal(t, errors.InvalidOperation, err)
}

func TestOperationTargetAndAmount(t *testing.T) {
	target := keypair.Random().Address()

	{ // stake has a value but no target
		op := TestMakeStake(500)
		require.Equal(t, "", op.Target())
		require.Equal(t, common.Amount(500), op.Amount())
	}

	{ // sync has a target but no value
		op := TestMakeSync(target)
		require.Equal(t, target, op.Target())
		require.Equal(t, common.Amount(0), op.Amount())
	}
}
