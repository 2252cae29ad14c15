package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newThreadsCmd())
	rootCmd.AddCommand(newDeleteCmd())
}

func newThreadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "threads",
		Short: "List stored threads",
		Long: `The threads command lists the threads in the store, oldest first.

Example:
  threadctl threads
  threadctl threads --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThreads()
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <thread-id>",
		Short: "Delete a stored thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
}

func runThreads() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	threads, err := s.Threads()
	if err != nil {
		return fmt.Errorf("failed to list threads: %w", err)
	}

	if jsonOut {
		return printJSON(threads)
	}

	if len(threads) == 0 {
		printInfo("No threads stored\n")
		return nil
	}
	for _, t := range threads {
		printInfo("%s  %6d  %s  %s\n", t.ID, t.Size, t.Created.Format("2006-01-02 15:04"), t.Title)
	}
	return nil
}

func runDelete(args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid thread id %q: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteThread(id); err != nil {
		return err
	}
	printInfo("Deleted thread %s\n", id)
	return nil
}
