package main

import (
	"stakegate.io/stakegate/cmd/stakegate/cmd"
)

func main() {
	cmd.Execute()
}
