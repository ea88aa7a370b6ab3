// Package signature identifies sequencing technologies from the
// structural shape of FASTQ inputs. It extracts an observed signature
// (file count plus one representative read length per file) and matches
// it against the technology registry.
package signature

import "fmt"

// Signature is the structural shape observed in a set of FASTQ files.
// It is constructed by Extract and never mutated afterwards.
type Signature struct {
	// FileCount is the number of FASTQ files supplied.
	FileCount int
	// Lengths holds one representative read length per file, in the
	// order the files were supplied.
	Lengths []int
	// ReadCount is the total number of reads examined while sampling,
	// across all files. It is diagnostic only; matching never consults
	// it.
	ReadCount int
}

func (s Signature) String() string {
	return fmt.Sprintf("%d file(s), read lengths %v, %d read(s) sampled", s.FileCount, s.Lengths, s.ReadCount)
}
