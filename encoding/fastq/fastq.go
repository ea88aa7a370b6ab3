// Package fastq provides minimal FASTQ record reading and writing: just
// enough to sample read lengths from the head of a file and to emit the
// FASTQ files reconstructed from a BAM.
package fastq

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrShort is returned when a FASTQ file ends in the middle of a
	// record.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when a malformed FASTQ record is
	// encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// A Read is one FASTQ record: ID line, sequence, separator ("+") line,
// and quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Len returns the read length in bases.
func (r *Read) Len() int {
	return len(r.Seq)
}

// Scanner reads FASTQ records from a stream. It validates that ID lines
// begin with "@" and separator lines with "+", but does not otherwise
// validate record contents. Scanners are not threadsafe.
type Scanner struct {
	b    *bufio.Scanner
	n    int
	done bool
	err  error
}

// NewScanner returns a Scanner reading raw FASTQ data from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan reads the next record into read, reporting whether a record was
// read. Once Scan returns false it never returns true again; the caller
// should then check Err to distinguish end of stream from failure.
func (s *Scanner) Scan(read *Read) bool {
	if s.done {
		return false
	}
	if !s.b.Scan() {
		s.done = true
		s.err = s.b.Err() // nil at a clean end of stream
		return false
	}
	id := s.b.Text()
	if len(id) == 0 || id[0] != '@' {
		s.fail(ErrInvalid)
		return false
	}
	seq, ok := s.line()
	if !ok {
		return false
	}
	unk, ok := s.line()
	if !ok {
		return false
	}
	if len(unk) == 0 || unk[0] != '+' {
		s.fail(ErrInvalid)
		return false
	}
	qual, ok := s.line()
	if !ok {
		return false
	}
	read.ID = id
	read.Seq = seq
	read.Unk = unk
	read.Qual = qual
	s.n++
	return true
}

// line reads one more line of the current record.
func (s *Scanner) line() (string, bool) {
	if !s.b.Scan() {
		if err := s.b.Err(); err != nil {
			s.fail(err)
		} else {
			s.fail(ErrShort)
		}
		return "", false
	}
	return s.b.Text(), true
}

func (s *Scanner) fail(err error) {
	s.done = true
	s.err = err
}

// N reports the number of complete records scanned so far.
func (s *Scanner) N() int {
	return s.n
}

// Err returns the first error encountered, or nil if the stream ended
// cleanly.
func (s *Scanner) Err() error {
	return s.err
}
