package runner

import (
	logging "github.com/inconshreveable/log15"

	"stakegate.io/stakegate/lib/common/test"
)

func init() {
	SetLogging(logging.LvlDebug, test.LogHandler())
}
