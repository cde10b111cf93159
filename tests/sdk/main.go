package main

import (
	"fmt"
	"os"

	"stakegate.io/stakegate/lib/client"
	"stakegate.io/stakegate/lib/common"
)

// A minimal smoke check for the client SDK against a running node. It
// only reads public endpoints, so it is safe to point at any node.
func main() {
	endpoint := common.GetENVValue("SG_ENDPOINT", "https://127.0.0.1:12380")
	c := client.NewClient(endpoint)

	info, err := c.LoadNodeInfo()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("node:", info.Node.Address, info.Node.Alias)

	registry, err := c.LoadRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("administrator:", registry.Administrator)
	fmt.Println("global requirement:", registry.GlobalRequirement)
}
