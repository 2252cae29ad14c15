package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/threadkit/internal/logger"
)

var importTitle string

var importCmd = &cobra.Command{
	Use:   "import <thread.json>",
	Short: "Store a thread file and print its id",
	Long: `Import a JSON comment array into the thread store.

Comments keep their file order. Comments without an id are given one.
The new thread id is printed on stdout.

Examples:
  threadctl import thread.json --title "Release notes"
  threadctl --store ./threads import thread.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args)
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "Thread title (default: file name)")
	rootCmd.AddCommand(importCmd)
}

type importResult struct {
	Thread   string `json:"thread"`
	Title    string `json:"title"`
	Comments int    `json:"comments"`
}

func runImport(args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	comments, err := readCommentsFile(path)
	if err != nil {
		return err
	}

	title := importTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.CreateThread(title)
	if err != nil {
		return err
	}
	ids, err := s.Append(id, comments...)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	logger.Info("thread imported", "thread", id, "file", path, "comments", len(ids))

	if jsonOut {
		return printJSON(importResult{Thread: id.String(), Title: title, Comments: len(ids)})
	}

	printVerbose("Imported %d comments from %s\n", len(ids), path)
	fmt.Println(id)
	return nil
}
