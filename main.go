// main is the entry point for the repopulse CLI.
package main

import (
	"github.com/repopulse/repopulse/cmd"
	"github.com/repopulse/repopulse/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
