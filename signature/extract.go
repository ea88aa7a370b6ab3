package signature

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fqid/encoding/fastq"
	"github.com/pkg/errors"
)

// ErrNoInput is returned by Extract when no input files are supplied.
var ErrNoInput = errors.New("no input files")

// EmptyInputError is returned by Extract when a supplied file contains
// no reads to sample.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no reads to sample", e.Path)
}

// InputReadError is returned by Extract when a supplied file cannot be
// read or is not valid FASTQ.
type InputReadError struct {
	Path string
	Err  error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Cause returns the underlying read failure.
func (e *InputReadError) Cause() error {
	return e.Err
}

// Opts controls read-length sampling.
type Opts struct {
	// Skip is the number of leading reads to ignore in each file.
	Skip int
	// Sample is the number of reads per file (after Skip) examined to
	// pick the representative length. Values below 1 are treated as 1.
	// With Sample == 1 the first record's length is used; larger
	// samples use the most common length, ties broken by first
	// occurrence, so the result is deterministic for a given input.
	Sample int
}

// DefaultOpts samples the first read of each file.
var DefaultOpts = Opts{Skip: 0, Sample: 1}

// Extract reads the head of each input file and produces the observed
// signature. Only the sampled prefix of each file is read. Inputs may
// be plain or gzip-compressed FASTQ.
func Extract(ctx context.Context, paths []string, opts Opts) (Signature, error) {
	if len(paths) == 0 {
		return Signature{}, ErrNoInput
	}
	sample := opts.Sample
	if sample < 1 {
		sample = 1
	}
	sig := Signature{
		FileCount: len(paths),
		Lengths:   make([]int, 0, len(paths)),
	}
	for _, path := range paths {
		length, n, err := sampleLength(ctx, path, opts.Skip, sample)
		if err != nil {
			return Signature{}, err
		}
		log.Debug.Printf("%s: representative read length %d (%d read(s) examined)", path, length, n)
		sig.Lengths = append(sig.Lengths, length)
		sig.ReadCount += n
	}
	return sig, nil
}

// sampleLength returns the representative read length of the file and
// the number of reads examined.
func sampleLength(ctx context.Context, path string, skip, sample int) (int, int, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, 0, &InputReadError{Path: path, Err: err}
	}
	defer in.Close(ctx) // nolint: errcheck
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}

	// Tally lengths over the sample, remembering first-occurrence order
	// so that ties resolve deterministically.
	counts := map[int]int{}
	var order []int
	sc := fastq.NewScanner(r)
	var read fastq.Read
	n := 0
	for n < skip+sample && sc.Scan(&read) {
		n++
		if n <= skip {
			continue
		}
		l := read.Len()
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	if err := sc.Err(); err != nil {
		return 0, 0, &InputReadError{Path: path, Err: err}
	}
	if n <= skip {
		return 0, 0, &EmptyInputError{Path: path}
	}
	best, bestCount := 0, 0
	for _, l := range order {
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best, n, nil
}
