// Package technology describes the known single-cell sequencing
// technologies and the structural shape of the FASTQ files each one
// produces. The catalog is static: a technology is a value record, and
// adding support for a new chemistry means appending an entry to the
// registry in registry.go.
package technology

import "fmt"

// Role tags the biological payload of one FASTQ file in a technology's
// expected input order.
type Role string

const (
	// Barcode is a file carrying only the cell barcode.
	Barcode Role = "barcode"
	// BarcodeUMI is a file carrying the cell barcode followed by the UMI.
	BarcodeUMI Role = "barcode+umi"
	// UMI is a file carrying only the UMI.
	UMI Role = "umi"
	// CDNA is the file carrying the cDNA sequence.
	CDNA Role = "cdna"
)

// MaxReadLength is the upper bound used for roles whose read length is
// not constrained by the chemistry, i.e. the cDNA file.
const MaxReadLength = 1 << 20

// LengthRange is an inclusive read-length range. Technologies with an
// exact expected length use Min == Max.
type LengthRange struct {
	Min, Max int
}

// Contains reports whether n falls within the range.
func (r LengthRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Width is the slack of the range. A smaller width means a more
// specific technology.
func (r LengthRange) Width() int {
	return r.Max - r.Min
}

// Substring locates a barcode or UMI within one of a technology's
// files: byte range [Start, Stop) of every read in file index File.
type Substring struct {
	File  int
	Start int
	Stop  int
}

// Len returns the substring width in bases.
func (s Substring) Len() int {
	return s.Stop - s.Start
}

// Spec describes one known chemistry/platform version. Specs are
// immutable; they are constructed in registry.go and validated once at
// process start.
type Spec struct {
	// Name uniquely identifies the technology, e.g. "10xv2".
	Name string
	// Description is the human-readable technology name.
	Description string
	// Roles lists the role of each expected input file, in order. Its
	// length is the expected input file count.
	Roles []Role
	// RoleLengths maps each role in Roles to its acceptable read-length
	// range.
	RoleLengths map[Role]LengthRange

	// Barcodes and UMIs locate the cell barcode and UMI within the
	// technology's files. Used when reconstructing FASTQ files from a
	// BAM, not during signature matching.
	Barcodes []Substring
	UMIs     []Substring
	// ReadsFile is the index of the cDNA file.
	ReadsFile int
	// Whitelist names the barcode whitelist shipped for this
	// technology, if any. Informational only.
	Whitelist string
}

func (s Spec) String() string {
	return s.Name
}

// NumFiles returns the number of FASTQ files the technology produces.
func (s Spec) NumFiles() int {
	return len(s.Roles)
}

// LengthRangeAt returns the acceptable read-length range of the i'th
// input file.
func (s Spec) LengthRangeAt(i int) LengthRange {
	return s.RoleLengths[s.Roles[i]]
}

// TotalWidth is the summed slack of all role ranges. Matching uses it
// to rank a tighter spec above a looser one covering the same lengths.
func (s Spec) TotalWidth() int {
	total := 0
	for _, role := range s.Roles {
		total += s.RoleLengths[role].Width()
	}
	return total
}

// BarcodeLength returns the total cell barcode width in bases.
func (s Spec) BarcodeLength() int {
	total := 0
	for _, sub := range s.Barcodes {
		total += sub.Len()
	}
	return total
}

// UMILength returns the total UMI width in bases.
func (s Spec) UMILength() int {
	total := 0
	for _, sub := range s.UMIs {
		total += sub.Len()
	}
	return total
}

// validate checks the spec's internal consistency. Specs are static
// data, so a violation is a programming error.
func (s Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("technology has no name")
	}
	if len(s.Roles) == 0 {
		return fmt.Errorf("%s: no file roles", s.Name)
	}
	for _, role := range s.Roles {
		r, ok := s.RoleLengths[role]
		if !ok {
			return fmt.Errorf("%s: role %s has no length range", s.Name, role)
		}
		if r.Min < 1 || r.Min > r.Max {
			return fmt.Errorf("%s: role %s has invalid length range [%d, %d]", s.Name, role, r.Min, r.Max)
		}
	}
	if s.ReadsFile < 0 || s.ReadsFile >= len(s.Roles) {
		return fmt.Errorf("%s: cDNA file index %d out of range", s.Name, s.ReadsFile)
	}
	for _, sub := range append(append([]Substring{}, s.Barcodes...), s.UMIs...) {
		if sub.File < 0 || sub.File >= len(s.Roles) {
			return fmt.Errorf("%s: substring file index %d out of range", s.Name, sub.File)
		}
		if sub.Start < 0 || sub.Start >= sub.Stop {
			return fmt.Errorf("%s: invalid substring [%d, %d)", s.Name, sub.Start, sub.Stop)
		}
		if max := s.LengthRangeAt(sub.File).Max; sub.Stop > max {
			return fmt.Errorf("%s: substring [%d, %d) exceeds file %d length range", s.Name, sub.Start, sub.Stop, sub.File)
		}
	}
	return nil
}
