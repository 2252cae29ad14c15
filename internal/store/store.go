// Package store persists comment threads in a badger key-value database.
//
// Layout:
//
//	m/<thread uuid>               -> msgpack(Thread)
//	t/<thread uuid>/<position BE> -> msgpack(types.Comment)
//	seq/comment                   -> badger sequence for comment ids
//
// Positions are assigned per thread at append time, so iterating a thread's
// prefix returns comments in the order they were appended.
package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshuapare/threadkit/internal/buf"
	"github.com/joshuapare/threadkit/internal/logger"
	"github.com/joshuapare/threadkit/pkg/types"
)

var (
	threadPrefix  = []byte("m/")
	commentPrefix = []byte("t/")
	commentSeqKey = []byte("seq/comment")
)

// seqBandwidth is how many comment ids the sequence leases at a time.
const seqBandwidth = 100

// Options configures Open.
type Options struct {
	// InMemory keeps everything in memory; dir is ignored.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// MemTableSize overrides badger's memtable size in bytes. It also bounds
	// how much a single transaction may write. Zero keeps badger's default.
	MemTableSize int64
}

// Thread is the stored metadata of one thread.
type Thread struct {
	ID      uuid.UUID `msgpack:"id"      json:"id"`
	Title   string    `msgpack:"title"   json:"title"`
	Created time.Time `msgpack:"created" json:"created"`
	Size    uint64    `msgpack:"size"    json:"size"` // comments appended so far
}

// Store is a badger-backed thread store. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (or creates) the store in dir.
func Open(dir string, opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(dir).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(badgerLogger{})
	if opts.MemTableSize > 0 {
		// The value threshold must stay below badger's batch limit (15% of the memtable).
		bopts = bopts.WithMemTableSize(opts.MemTableSize).
			WithValueThreshold(min(bopts.ValueThreshold, opts.MemTableSize/20))
	}
	if opts.InMemory {
		bopts = bopts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", dir, err)
	}

	seq, err := db.GetSequence(commentSeqKey, seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("comment sequence: %w", err)
	}

	logger.Debug("store opened", "dir", dir, "in_memory", opts.InMemory)
	return &Store{db: db, seq: seq}, nil
}

// Close releases the id sequence and closes the database.
func (s *Store) Close() error {
	seqErr := s.seq.Release()
	return errors.Join(seqErr, s.db.Close())
}

// CreateThread stores a new, empty thread and returns its id.
func (s *Store) CreateThread(title string) (uuid.UUID, error) {
	t := &Thread{
		ID:      uuid.New(),
		Title:   title,
		Created: time.Now().UTC(),
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return putThread(txn, t)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create thread: %w", err)
	}
	logger.Info("thread created", "thread", t.ID, "title", title)
	return t.ID, nil
}

// Thread returns the metadata of thread id.
func (s *Store) Thread(id uuid.UUID) (*Thread, error) {
	var t *Thread
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		t, err = getThread(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Threads lists all threads, oldest first.
func (s *Store) Threads() ([]*Thread, error) {
	var out []*Thread
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: threadPrefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			t := &Thread{}
			if err := it.Item().Value(func(v []byte) error {
				return msgpack.Unmarshal(v, t)
			}); err != nil {
				return fmt.Errorf("decode thread %x: %w", it.Item().Key(), err)
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *Thread) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

// Append adds comments to the end of thread, keeping their order. A comment
// with ID 0 is assigned a fresh id, written back into the caller's value.
// Nil comments are skipped. It returns the ids of the appended comments.
//
// Appends too large for one badger transaction are committed in several
// batches. If a later batch fails, the earlier batches stay committed and
// the thread's Size counts them; the returned error says so.
func (s *Store) Append(thread uuid.UUID, comments ...*types.Comment) ([]types.ID, error) {
	txn := s.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	t, err := getThread(txn, thread)
	if err != nil {
		return nil, err
	}

	ids := make([]types.ID, 0, len(comments))
	committed, batches := 0, 1
	for _, c := range comments {
		if c == nil {
			continue
		}
		if c.ID == 0 {
			next, err := s.seq.Next()
			if err != nil {
				return nil, s.partial(thread, committed, fmt.Errorf("next comment id: %w", err))
			}
			// zero is reserved for top-level parents
			c.ID = types.ID(next + 1)
		}

		data, err := msgpack.Marshal(c)
		if err != nil {
			return nil, s.partial(thread, committed, fmt.Errorf("encode comment %d: %w", c.ID, err))
		}

		key := commentKey(thread, t.Size)
		err = txn.Set(key, data)
		if errors.Is(err, badger.ErrTxnTooBig) {
			// Commit what we have and continue in a fresh transaction.
			if err := putThread(txn, t); err != nil {
				return nil, s.partial(thread, committed, err)
			}
			if err := txn.Commit(); err != nil {
				return nil, s.partial(thread, committed, fmt.Errorf("commit batch: %w", err))
			}
			committed = len(ids)
			batches++
			txn = s.db.NewTransaction(true)
			err = txn.Set(key, data)
		}
		if err != nil {
			return nil, s.partial(thread, committed, fmt.Errorf("store comment %d: %w", c.ID, err))
		}
		t.Size++
		ids = append(ids, c.ID)
	}

	if err := putThread(txn, t); err != nil {
		return nil, s.partial(thread, committed, err)
	}
	if err := txn.Commit(); err != nil {
		return nil, s.partial(thread, committed, fmt.Errorf("commit: %w", err))
	}

	logger.Debug("comments appended", "thread", thread, "count", len(ids), "size", t.Size, "batches", batches)
	return ids, nil
}

// partial annotates an Append error with how many comments were already
// committed by earlier batches.
func (s *Store) partial(thread uuid.UUID, committed int, err error) error {
	if committed == 0 {
		return err
	}
	logger.Warn("partial append", "thread", thread, "committed", committed, "error", err)
	return fmt.Errorf("append to thread %s stopped after %d committed comments: %w", thread, committed, err)
}

// Comments returns the comments of thread in append order.
func (s *Store) Comments(thread uuid.UUID) ([]*types.Comment, error) {
	var out []*types.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		t, err := getThread(txn, thread)
		if err != nil {
			return err
		}
		out = make([]*types.Comment, 0, t.Size)

		prefix := commentsPrefix(thread)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			c := &types.Comment{}
			if err := item.Value(func(v []byte) error {
				return msgpack.Unmarshal(v, c)
			}); err != nil {
				pos, _ := buf.Slice(item.Key(), len(prefix), 8)
				return fmt.Errorf("decode comment at position %d: %w", buf.U64BE(pos), err)
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteThread removes thread and all of its comments.
func (s *Store) DeleteThread(thread uuid.UUID) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := getThread(txn, thread); err != nil {
			return err
		}

		var keys [][]byte
		it := txn.NewIterator(badger.IteratorOptions{Prefix: commentsPrefix(thread)})
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return txn.Delete(threadKey(thread))
	})
	if err != nil {
		return fmt.Errorf("delete thread %s: %w", thread, err)
	}
	logger.Info("thread deleted", "thread", thread)
	return nil
}

func getThread(txn *badger.Txn, id uuid.UUID) (*Thread, error) {
	item, err := txn.Get(threadKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, types.Wrap(types.ErrNotFound, fmt.Errorf("thread %s", id))
	}
	if err != nil {
		return nil, err
	}

	t := &Thread{}
	if err := item.Value(func(v []byte) error {
		return msgpack.Unmarshal(v, t)
	}); err != nil {
		return nil, fmt.Errorf("decode thread %s: %w", id, err)
	}
	return t, nil
}

func putThread(txn *badger.Txn, t *Thread) error {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode thread %s: %w", t.ID, err)
	}
	return txn.Set(threadKey(t.ID), data)
}

func threadKey(id uuid.UUID) []byte {
	return buf.Concat(threadPrefix, id[:])
}

func commentsPrefix(id uuid.UUID) []byte {
	return buf.Concat(commentPrefix, id[:], []byte{'/'})
}

func commentKey(id uuid.UUID, pos uint64) []byte {
	return buf.AppendU64BE(commentsPrefix(id), pos)
}
