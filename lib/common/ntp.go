package common

import (
	"time"

	"github.com/beevik/ntp"

	"stakegate.io/stakegate/lib/errors"
)

// MaxAllowedClockOffset is how far the local clock may drift from NTP
// time before a node refuses to start. Envelope timestamps and receipt
// ordering depend on a reasonably synchronized clock.
const MaxAllowedClockOffset = 2 * time.Second

func CheckClockOffset(host string) error {
	response, err := ntp.Query(host)
	if err != nil {
		return err
	}

	offset := response.ClockOffset
	if offset > MaxAllowedClockOffset || offset < -MaxAllowedClockOffset {
		return errors.ClockOffsetExceeded.Clone().SetData("offset", offset.String())
	}

	log.Debug("local clock is in sync", "ntp-host", host, "offset", offset.String())

	return nil
}
