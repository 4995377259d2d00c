// Package main provides the report command: print a dataset file as
// aligned tables, or list recent runs from the history database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mandi/internal/persist"
	"mandi/internal/report"
)

func main() {
	filePath := flag.String("file", "", "Dataset JSON file to render")
	dbPath := flag.String("db", "data/history.db", "Run history database")
	historyCount := flag.Int("history", 0, "List the N most recent runs instead of rendering a file")
	flag.Parse()

	switch {
	case *historyCount > 0:
		if err := printHistory(*dbPath, *historyCount); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	case *filePath != "":
		if err := printDataset(*filePath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Please provide -file or -history")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

func printDataset(path string) error {
	file, err := persist.ReadDataset(path)
	if err != nil {
		return err
	}

	fmt.Print(report.RenderDataset(file))

	return nil
}

func printHistory(dbPath string, limit int) error {
	store, err := persist.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	fmt.Print(report.RenderHistory(runs))

	return nil
}
