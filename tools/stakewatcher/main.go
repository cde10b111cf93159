//
// Stake watcher is a small utility for integration scripts
//
// It subscribes to the account stream and waits for every given
// address to reach a certain staked amount. Once all of them have,
// it exits with a 0 status code.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stakegate.io/stakegate/lib/client"
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/observer"
)

type expectation struct {
	address string
	staked  common.Amount
}

// This program expects an uneven number of arguments (>3):
// - the server address (without trailing slash)
// - one or more pairs of address + staked amount
func main() {
	if len(os.Args) < 4 {
		fmt.Println("ERROR: At least three arguments expected")
		os.Exit(1)
	}

	server := os.Args[1]
	args := os.Args[2:]
	if len(args)%2 != 0 {
		fmt.Println("ERROR: Arguments should be <server> <address staked>+")
		os.Exit(1)
	}

	var exps []expectation
	var events []observer.Event
	for i := 0; i < len(args); i += 2 {
		events = append(events, observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, args[i]))
		exps = append(exps, expectation{address: args[i], staked: common.MustAmountFromString(args[i+1])})
	}

	cli := client.NewClient(server)
	ctx, cancel := context.WithCancel(context.Background())

	handler := func(b []byte) error {
		var ac client.Account
		if err := json.Unmarshal(b, &ac); err != nil {
			return err
		}

		// Log every change, so if something fails there is a history
		// of what the watcher saw
		now := time.Now()
		fmt.Printf("%02d-%02d-%02d:%s:%s:%d\n", now.Hour(), now.Minute(), now.Second(),
			ac.Address, ac.Staked, ac.SequenceID)

		current := common.MustAmountFromString(ac.Staked)

		remaining := 0
		for idx, exp := range exps {
			if len(exp.address) == 0 {
				continue
			}
			if exp.address == ac.Address && exp.staked == current {
				exps[idx].address = ""
				continue
			}
			remaining++
		}
		if remaining == 0 {
			cancel()
		}
		return nil
	}

	if err := cli.Stream(ctx, observer.NewSubscribe(events...), handler); err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}
}
