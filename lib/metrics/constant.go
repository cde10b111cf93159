package metrics

const (
	Namespace         = "stakegate"
	ExecutorSubsystem = "executor"
	RegistrySubsystem = "registry"
	TransferSubsystem = "transfer"
	APISubsystem      = "api"
)

const (
	ExecutorOperationType = "type"

	TransferComponent = "component"
	TransferSend      = "send"
	TransferBalance   = "balance"
	TransferAll       = "all"
)
