package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts           = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLAccountMembership  = APIPrefix + APIVersionV1 + "/accounts/{id}/membership"
	URLAccountRequirement = APIPrefix + APIVersionV1 + "/accounts/{id}/requirement"
	URLAccountReceipts    = APIPrefix + APIVersionV1 + "/accounts/{id}/receipts"
	URLReceipts           = APIPrefix + APIVersionV1 + "/receipts"
	URLReceiptByHash      = APIPrefix + APIVersionV1 + "/receipts/{id}"
	URLRegistry           = APIPrefix + APIVersionV1 + "/registry"
)
