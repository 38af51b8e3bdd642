package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetsight/fleetsight-api/internal/pipeline"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Answer a list of questions, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		questions := args
		if batchFile != "" {
			fromFile, err := readLines(batchFile)
			if err != nil {
				return err
			}
			questions = append(questions, fromFile...)
		}
		if len(questions) == 0 {
			return fmt.Errorf("no questions given: pass them as arguments or via --file")
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		responses := a.pipeline.BatchProcess(ctx, questions, pipeline.DefaultOptions())
		return printJSON(cmd, responses)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one question per line")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
