package sink

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
)

// Split partitions the stream into files of at most budget encoded bytes.
//
// A word that would push a non-empty partition over budget starts the next
// one, so every partition holds at least one word. Partitions are written
// under a temporary name and renamed to PartitionName(first, last) once
// complete, then passed to the finalizer. A name already taken, on disk or
// by an earlier partition, gets a counter suffix: a-a.txt, a-a.1.txt, ...
type Split struct {
	dir       string
	budget    int64
	finalizer Finalizer
	log       *zap.SugaredLogger

	ctx       context.Context
	current   *partition
	artifacts []Artifact
	claimed   map[string]bool
	existing  []string
}

// NewSplit returns a partitioning sink writing into dir, creating it if
// needed. ctx bounds the finalizers run when a partition fills up.
func NewSplit(ctx context.Context, dir string, budget int64, finalizer Finalizer) (*Split, error) {
	if budget < 1 {
		return nil, errors.Wrapf(errors.ErrMalformedSizeSpec, "split size must be positive, got %d", budget)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read output directory %s", dir)
	}
	existing := make([]string, 0, len(entries))
	for _, e := range entries {
		existing = append(existing, e.Name())
	}
	return &Split{
		dir:       dir,
		budget:    budget,
		finalizer: finalizer,
		log:       logger.ComponentLogger("sink.split"),
		ctx:       ctx,
		claimed:   make(map[string]bool),
		existing:  existing,
	}, nil
}

// Accept implements Sink.
func (s *Split) Accept(word string) error {
	if s.current != nil && s.current.words > 0 && s.current.bytes+encodedSize(word) > s.budget {
		if err := s.rotate(s.ctx); err != nil {
			return err
		}
	}
	if s.current == nil {
		tmp := filepath.Join(s.dir, ".crunch-"+uuid.NewString()+".part")
		part, err := createPartition(tmp)
		if err != nil {
			return err
		}
		s.current = part
	}
	return s.current.write(word)
}

// Close completes the last partition.
func (s *Split) Close(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	return s.rotate(ctx)
}

// Artifacts implements Reporter.
func (s *Split) Artifacts() []Artifact { return s.artifacts }

func (s *Split) rotate(ctx context.Context) error {
	part := s.current
	s.current = nil
	if err := part.close(); err != nil {
		if rmErr := os.Remove(part.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.log.Warnw("Failed to remove partial partition", logger.FieldPath, part.path, logger.FieldError, rmErr.Error())
		}
		return err
	}

	final := s.claim(PartitionName(part.first, part.last))
	if err := os.Rename(part.path, final); err != nil {
		return errors.Wrapf(err, "failed to rename partition to %s", final)
	}
	part.path = final

	a := part.artifact()
	s.log.Infow("Partition written",
		logger.FieldPath, a.Path,
		logger.FieldWords, a.Words,
		logger.FieldBytes, a.Bytes)

	var err error
	if s.finalizer != nil {
		err = s.finalizer.Finalize(ctx, &a)
	}
	// Recorded even if a finalizer failed: the file is on disk.
	s.artifacts = append(s.artifacts, a)
	return err
}

// claim returns a path in dir for name that is not on disk, was not
// handed out before, and is not the stem of a file that was already in dir
// (a-a.txt is taken when a-a.txt.gz exists). A counter goes before the
// extension when needed.
func (s *Split) claim(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; s.taken(candidate); i++ {
		candidate = fmt.Sprintf("%s.%d%s", stem, i, ext)
	}
	s.claimed[candidate] = true
	return filepath.Join(s.dir, candidate)
}

func (s *Split) taken(name string) bool {
	if s.claimed[name] {
		return true
	}
	if _, err := os.Lstat(filepath.Join(s.dir, name)); err == nil {
		return true
	}
	for _, e := range s.existing {
		if strings.HasPrefix(e, name+".") {
			return true
		}
	}
	return false
}
