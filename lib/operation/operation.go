package operation

import (
	"encoding/json"
	"reflect"

	"github.com/btcsuite/btcutil/base58"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

type OperationType string

const (
	TypeStake                  OperationType = "stake"
	TypeUnstake                OperationType = "unstake"
	TypeJoin                   OperationType = "join"
	TypeSync                   OperationType = "sync"
	TypeAdminAddMembership     OperationType = "admin-add-membership"
	TypeAdminRemoveMembership  OperationType = "admin-remove-membership"
	TypeSetRequirement         OperationType = "set-requirement"
	TypeSetGlobalRequirement   OperationType = "set-global-requirement"
	TypeTransferAdministration OperationType = "transfer-administration"
	TypeWithdrawExcess         OperationType = "withdraw-excess"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeStake),
		string(TypeUnstake),
		string(TypeJoin),
		string(TypeSync),
		string(TypeAdminAddMembership),
		string(TypeAdminRemoveMembership),
		string(TypeSetRequirement),
		string(TypeSetGlobalRequirement),
		string(TypeTransferAdministration),
		string(TypeWithdrawExcess),
	}, oType)
	return b
}

// IsAdminOperation marks the types only the current administrator may
// submit.
func IsAdminOperation(t OperationType) bool {
	switch t {
	case TypeAdminAddMembership, TypeAdminRemoveMembership,
		TypeSetRequirement, TypeSetGlobalRequirement,
		TypeTransferAdministration, TypeWithdrawExcess:
		return true
	default:
		return false
	}
}

// IsGuardedOperation marks the types that perform an outbound asset
// transfer and therefore run under the reentrancy latch.
func IsGuardedOperation(t OperationType) bool {
	switch t {
	case TypeUnstake, TypeWithdrawExcess:
		return true
	default:
		return false
	}
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case Stake:
		t = TypeStake
	case Unstake:
		t = TypeUnstake
	case Join:
		t = TypeJoin
	case Sync:
		t = TypeSync
	case AdminAddMembership:
		t = TypeAdminAddMembership
	case AdminRemoveMembership:
		t = TypeAdminRemoveMembership
	case SetRequirement:
		t = TypeSetRequirement
	case SetGlobalRequirement:
		t = TypeSetGlobalRequirement
	case TransferAdministration:
		t = TypeTransferAdministration
	case WithdrawExcess:
		t = TypeWithdrawExcess
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation is self consistent
	//
	// This routine is run before an operation enters the executor, so
	// anything it rejects never touches the ledger state.
	//
	// Params:
	//   config = Node configuration
	//
	// Returns:
	//   An `error` if that operation is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error
}

type Valuable interface {
	GetAmount() common.Amount
}

type Targetable interface {
	TargetAddress() string
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	return o.B.IsWellFormed(conf)
}

func (o Operation) MakeHashString() string {
	return base58.Encode(common.MustMakeObjectHash(o.B))
}

// Target returns the body's target address. Operations without an
// explicit target act on the envelope source, for which the empty
// string is returned.
func (o Operation) Target() string {
	if t, ok := o.B.(Targetable); ok {
		return t.TargetAddress()
	}
	return ""
}

// Amount returns the monetary value the body carries, zero when it has
// none.
func (o Operation) Amount() common.Amount {
	if p, ok := o.B.(Valuable); ok {
		return p.GetAmount()
	}
	return common.Amount(0)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeStake:
		return &Stake{}, nil
	case TypeUnstake:
		return &Unstake{}, nil
	case TypeJoin:
		return &Join{}, nil
	case TypeSync:
		return &Sync{}, nil
	case TypeAdminAddMembership:
		return &AdminAddMembership{}, nil
	case TypeAdminRemoveMembership:
		return &AdminRemoveMembership{}, nil
	case TypeSetRequirement:
		return &SetRequirement{}, nil
	case TypeSetGlobalRequirement:
		return &SetGlobalRequirement{}, nil
	case TypeTransferAdministration:
		return &TransferAdministration{}, nil
	case TypeWithdrawExcess:
		return &WithdrawExcess{}, nil
	default:
		return nil, errors.InvalidOperation
	}
}
