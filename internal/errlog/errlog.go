// Package errlog writes the per-file scan error log.
//
// Workers never touch the file directly. Records travel over a channel to a
// single writer goroutine, so lines from concurrent workers cannot interleave.
package errlog

import (
	"bufio"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
)

const (
	// Header is written at the top of every fresh log.
	Header = "PDF Scan Error Log\n\n"

	// MaxMessageLen bounds the error text kept per record, in characters.
	MaxMessageLen = 200

	queueSize = 256
)

// Record is one failing file.
type Record struct {
	Path    string
	Message string
}

// Line renders the record the way it appears in the log.
func (r Record) Line() string {
	return fmt.Sprintf("%s | Error: %s\n", r.Path, r.Message)
}

// Truncate shortens msg to at most MaxMessageLen characters.
func Truncate(msg string) string {
	runes := []rune(msg)
	if len(runes) <= MaxMessageLen {
		return msg
	}
	return string(runes[:MaxMessageLen])
}

// Sink is an append-only error log owned by one writer goroutine.
type Sink struct {
	file    billy.File
	records chan Record
	done    chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error

	count    atomic.Int64
	writeErr error // owned by run until done is closed
}

// Create truncates path, writes the header, and starts the writer.
func Create(fsys billy.Filesystem, path string) (*Sink, error) {
	f, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create error log %s: %w", path, err)
	}
	if _, err := f.Write([]byte(Header)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write error log header: %w", err)
	}

	s := &Sink{
		file:    f,
		records: make(chan Record, queueSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Record queues a failure for path. The message is truncated first.
// Calls after Close are dropped.
func (s *Sink) Record(path string, err error) {
	if err == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	s.records <- Record{Path: path, Message: Truncate(err.Error())}
}

// Count returns how many records have been written so far.
func (s *Sink) Count() int {
	return int(s.count.Load())
}

// Close drains pending records, flushes, and closes the file. It returns
// the first write error encountered, if any.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.records)
		s.mu.Unlock()

		<-s.done
		s.closeErr = s.writeErr
		if err := s.file.Close(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to close error log: %w", err)
		}
	})
	return s.closeErr
}

func (s *Sink) run() {
	defer close(s.done)

	w := bufio.NewWriter(s.file)
	for rec := range s.records {
		if s.writeErr != nil {
			continue
		}
		if _, err := w.WriteString(rec.Line()); err != nil {
			s.writeErr = fmt.Errorf("failed to append to error log: %w", err)
			continue
		}
		s.count.Add(1)
		// Flush when idle so the log stays current during long runs.
		if len(s.records) == 0 {
			if err := w.Flush(); err != nil {
				s.writeErr = fmt.Errorf("failed to flush error log: %w", err)
			}
		}
	}
	if s.writeErr == nil {
		if err := w.Flush(); err != nil {
			s.writeErr = fmt.Errorf("failed to flush error log: %w", err)
		}
	}
}
