package main

import (
	"dexrr/cmd"
)

func main() {
	cmd.Execute()
}
