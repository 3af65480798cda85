// main is the entry point for the cpitrend CLI.
package main

import (
	"github.com/huangsam/cpitrend/cmd"
	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)
	defer history.Close()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		history.Close()
		contract.LogFatal("cpitrend failed", err)
	}
}
