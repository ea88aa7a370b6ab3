package fastq

import (
	"fmt"
	"io"
)

// Writer writes FASTQ records. Write errors are sticky: after the first
// failure all subsequent writes are no-ops returning the same error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a FASTQ writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one record with the given name, sequence, and quality
// string. The "@" prefix and the bare "+" separator line are supplied
// by the writer.
func (w *Writer) Write(name, seq, qual string) error {
	if w.err == nil {
		_, w.err = fmt.Fprintf(w.w, "@%s\n%s\n+\n%s\n", name, seq, qual)
	}
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
