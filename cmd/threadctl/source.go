package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joshuapare/threadkit/internal/config"
	"github.com/joshuapare/threadkit/internal/logger"
	"github.com/joshuapare/threadkit/internal/store"
	"github.com/joshuapare/threadkit/pkg/types"
)

// defaultStoreDir is used when neither --store nor store_dir is set.
const defaultStoreDir = ".threadctl/store"

// readCommentsFile decodes a JSON array of comments. "-" reads stdin.
func readCommentsFile(path string) ([]*types.Comment, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open thread file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var comments []*types.Comment
	if err := json.NewDecoder(r).Decode(&comments); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return comments, nil
}

// openStore opens the configured thread store.
func openStore(cfg *config.Config) (*store.Store, error) {
	dir := cfg.StoreDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("no store directory: %w", err)
		}
		dir = filepath.Join(home, defaultStoreDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	printVerbose("Opening store: %s\n", dir)
	return store.Open(dir, store.Options{})
}

// loadComments reads comments from the file in args or, when thread is set,
// from the store. It returns the comments and a label for messages.
func loadComments(cfg *config.Config, args []string, thread string) ([]*types.Comment, string, error) {
	switch {
	case thread != "" && len(args) > 0:
		return nil, "", errors.New("give either a thread file or --thread, not both")
	case thread != "":
		id, err := uuid.Parse(thread)
		if err != nil {
			return nil, "", fmt.Errorf("invalid thread id %q: %w", thread, err)
		}
		s, err := openStore(cfg)
		if err != nil {
			return nil, "", err
		}
		defer s.Close()

		comments, err := s.Comments(id)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("thread loaded", "thread", id, "comments", len(comments))
		return comments, id.String(), nil
	case len(args) == 1:
		printVerbose("Reading thread: %s\n", args[0])
		comments, err := readCommentsFile(args[0])
		if err != nil {
			return nil, "", err
		}
		logger.Debug("thread loaded", "file", args[0], "comments", len(comments))
		return comments, args[0], nil
	default:
		return nil, "", errors.New("expected a thread file or --thread <id>")
	}
}
