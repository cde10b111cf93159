package errors

var (
	AccountAlreadyExists       = NewError(100, "account already exists")
	AccountDoesNotExist        = NewError(101, "account does not exist")
	AccountBalanceUnderZero    = NewError(102, "account balance would fall under zero")
	MaximumBalanceReached      = NewError(103, "monetary amount would be over the maximum")
	ZeroAmount                 = NewError(104, "amount must be greater than zero")
	ZeroIdentity               = NewError(105, "target identity must not be empty")
	InsufficientBalance        = NewError(106, "staked balance is lower than the requested amount")
	InsufficientStake          = NewError(107, "staked balance does not meet the effective requirement")
	AlreadyMember              = NewError(108, "account is already a member")
	NotMember                  = NewError(109, "account is not a member")
	NotAdministrator           = NewError(110, "source is not the administrator")
	Reentrant                  = NewError(111, "another outbound transfer is still in flight")
	TransferFailed             = NewError(112, "outbound asset transfer failed")
	RosterRequired             = NewError(113, "excess withdrawal needs an explicit account roster")
	ExcessUnderflow            = NewError(114, "requested amount is over the recoverable excess")
	InvalidAmountFormat        = NewError(115, "amount string could not be parsed")
	InvalidOperation           = NewError(120, "invalid operation")
	UnknownOperationType       = NewError(121, "unknown operation type")
	DuplicatedOperation        = NewError(122, "duplicated operation in envelope")
	OperationsLimitExceeded    = NewError(123, "operations count is over the limit")
	InvalidEnvelope            = NewError(124, "invalid envelope")
	HashDoesNotMatch           = NewError(125, "envelope hash does not match the body")
	SignatureVerificationFailed = NewError(126, "signature verification failed")
	InvalidSequenceID          = NewError(127, "sequence id does not match the account")
	BadPublicAddress           = NewError(128, "failed to parse public address")
	EnvelopeAlreadyApplied     = NewError(129, "envelope was already applied")
	StorageRecordDoesNotExist  = NewError(130, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(131, "record already exists in storage")
	StorageCoreError           = NewError(132, "storage error")
	NotCommittable             = NewError(133, "storage does not support commit")
	ReceiptDoesNotExist        = NewError(134, "receipt does not exist")
	StateDoesNotExist          = NewError(135, "ledger state is not initialized")
	AlreadyInitialized         = NewError(136, "ledger state is already initialized")
	AlreadySaved               = NewError(137, "record was already saved")
	InvalidQueryString         = NewError(140, "found invalid query string")
	PageQueryLimitMaxExceed    = NewError(141, "limit is over the maximum")
	InvalidContentType         = NewError(142, "invalid content-type")
	MessageNotFound            = NewError(143, "message not found")
	HTTPRouterDoesNotExist     = NewError(144, "http router does not exist")
	TooManyRequests            = NewError(145, "too many requests")
	BadRequestParameter        = NewError(146, "found invalid request parameter")
	HTTPCacheAdapterNotFound   = NewError(147, "http cache adapter does not exist")
	TransferAgentNotReady      = NewError(150, "transfer agent is not configured")
	TransferAgentQueryFailed   = NewError(151, "transfer agent query failed")
	InvalidState               = NewError(152, "invalid raw state")
	ClockOffsetExceeded        = NewError(153, "local clock is too far from ntp time")
	NotImplemented             = NewError(154, "not implemented")
)
