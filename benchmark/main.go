// Package main provides a performance benchmarking tool for the cpitrend CLI.
// It generates synthetic quarterly datasets of increasing length, runs each command
// multiple times with and without a history backend, treating the first successful
// history run as cold and averaging the rest as warm, and writes the timings as CSV.
//
// Prerequisites:
// - cpitrend binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where datasets and the benchmark history database are written
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Sizes         []int // Number of quarters per generated dataset
	GapEvery      int   // Every n-th quarter is left blank
	Commands      []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Sizes:         []int{40, 400, 4000},
		GapEvery:      7,
		Commands:      []string{"report", "fill", "annotate"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the cpitrend binary exists and the work dir is usable.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("cpitrend"); err != nil {
		return fmt.Errorf("cpitrend binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateDatasets writes one CSV per configured size and returns their paths.
func generateDatasets(config BenchmarkConfig) ([]string, error) {
	paths := make([]string, 0, len(config.Sizes))
	for _, size := range config.Sizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("cpi_%d.csv", size))
		if err := writeDataset(path, size, config.GapEvery); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeDataset writes a steadily rising quarterly series starting in the year 1000,
// keeping the first and last quarters observed so every gap is interior.
func writeDataset(path string, quarters, gapEvery int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"date", "cpi"}); err != nil {
		return err
	}
	start := time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range quarters {
		value := fmt.Sprintf("%.2f", 100*math.Pow(1.005, float64(i)))
		if gapEvery > 0 && i > 0 && i < quarters-1 && i%gapEvery == 0 {
			value = "NA"
		}
		if err := writer.Write([]string{start.AddDate(0, 3*i, 0).Format("2006-01-02"), value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes every command against every generated dataset.
func runBenchmarks(config BenchmarkConfig, datasets []string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-history: %d runs, history: %d runs\n",
		len(datasets), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, dataset := range datasets {
		fmt.Printf("Benchmarking %s\n", filepath.Base(dataset))
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, dataset, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, filepath.Base(dataset))

	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, command, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Start every history phase from an empty database so the first run pays for table creation
	dbPath := filepath.Join(config.WorkDir, "benchmark_history.db")
	_ = os.Remove(dbPath)
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       filepath.Base(dataset),
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a cpitrend command multiple times and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, dataset, command, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, dataset, "--history-backend", historyBackend, "--color", "no"}
	if historyBackend == "sqlite" {
		args = append(args, "--history-db-connect", filepath.Join(config.WorkDir, "benchmark_history.db"))
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("cpitrend", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "report" {
		return strings.Contains(outputStr, "Report completed in")
	}
	return len(strings.TrimSpace(outputStr)) > 0
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("cpitrend_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by command.
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-14s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
