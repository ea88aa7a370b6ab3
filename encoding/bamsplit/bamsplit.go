// Package bamsplit converts single-cell BAM files back into the
// per-role FASTQ files the sequencer would have produced, so that the
// signature pipeline can run on BAM input.
package bamsplit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fqid/encoding/fastq"
	"github.com/grailbio/fqid/technology"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Splitter converts one BAM file into FASTQ files. The returned paths
// follow the technology's file-role order; an implementation that
// cannot determine the order must return an error instead.
type Splitter interface {
	Split(ctx context.Context, bamPath, prefix string) ([]string, error)
}

// 10x BAM aux tags.
// https://support.10xgenomics.com/single-cell-gene-expression/software/pipelines/latest/output/bam
var (
	crTag = sam.Tag{'C', 'R'} // uncorrected cell barcode
	cyTag = sam.Tag{'C', 'Y'} // cell barcode quality
	urTag = sam.Tag{'U', 'R'} // uncorrected UMI
	uyTag = sam.Tag{'U', 'Y'} // UMI quality
)

// TenX splits BAM files produced by the 10x pipelines. The chemistry
// version is detected from the barcode and UMI tag widths of the first
// record.
type TenX struct {
	// Specs is the candidate technology catalog. Defaults to
	// technology.All().
	Specs []technology.Spec
}

var _ Splitter = (*TenX)(nil)

func (s *TenX) specs() []technology.Spec {
	if s.Specs != nil {
		return s.Specs
	}
	return technology.All()
}

func auxString(rec *sam.Record, tag sam.Tag) (string, bool) {
	aux := rec.AuxFields.Get(tag)
	if aux == nil {
		return "", false
	}
	v, ok := aux.Value().(string)
	return v, ok
}

// DetectTechnology determines which 10x chemistry produced the BAM by
// inspecting the first record's CR (barcode) and UR (UMI) tag widths.
func (s *TenX) DetectTechnology(ctx context.Context, bamPath string) (technology.Spec, error) {
	in, err := file.Open(ctx, bamPath)
	if err != nil {
		return technology.Spec{}, errors.Wrap(err, bamPath)
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return technology.Spec{}, errors.Wrap(err, bamPath)
	}
	rec, err := r.Read()
	if err == io.EOF {
		return technology.Spec{}, errors.Errorf("%s: BAM contains no records", bamPath)
	}
	if err != nil {
		return technology.Spec{}, errors.Wrap(err, bamPath)
	}
	for _, tag := range []sam.Tag{crTag, cyTag, urTag, uyTag} {
		if _, ok := auxString(rec, tag); !ok {
			return technology.Spec{}, errors.Errorf("%s: not a 10x BAM (no %v tag on first record)", bamPath, tag)
		}
	}
	barcode, _ := auxString(rec, crTag)
	umi, _ := auxString(rec, urTag)
	for _, spec := range s.specs() {
		if !strings.HasPrefix(spec.Name, "10x") {
			continue
		}
		if spec.BarcodeLength() == len(barcode) && spec.UMILength() == len(umi) {
			return spec, nil
		}
	}
	return technology.Spec{}, errors.Errorf("%s: no 10x technology with barcode length %d and UMI length %d",
		bamPath, len(barcode), len(umi))
}

// Split implements Splitter. The BAM is rewritten as
// <prefix>_1.fastq.gz .. <prefix>_N.fastq.gz, one file per technology
// role, in role order. Barcode and UMI files are reconstructed from the
// aux tags; bases outside the barcode/UMI positions are filled with N.
func (s *TenX) Split(ctx context.Context, bamPath, prefix string) ([]string, error) {
	spec, err := s.DetectTechnology(ctx, bamPath)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: detected technology %s", bamPath, spec.Name)

	paths := make([]string, spec.NumFiles())
	for i := range paths {
		if prefix == "" {
			paths[i] = fmt.Sprintf("%d.fastq.gz", i+1)
		} else {
			paths[i] = fmt.Sprintf("%s_%d.fastq.gz", prefix, i+1)
		}
	}
	log.Printf("splitting %s into %s", bamPath, strings.Join(paths, ", "))

	in, err := file.Open(ctx, bamPath)
	if err != nil {
		return nil, errors.Wrap(err, bamPath)
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, errors.Wrap(err, bamPath)
	}

	outs := make([]file.File, len(paths))
	gzs := make([]*gzip.Writer, len(paths))
	writers := make([]*fastq.Writer, len(paths))
	for i, path := range paths {
		out, err := file.Create(ctx, path)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		outs[i] = out
		gzs[i] = gzip.NewWriter(out.Writer(ctx))
		writers[i] = fastq.NewWriter(gzs[i])
	}

	splitErr := s.writeRecords(r, spec, writers)
	for i := range paths {
		if err := writers[i].Err(); err != nil && splitErr == nil {
			splitErr = errors.Wrap(err, paths[i])
		}
		if err := gzs[i].Close(); err != nil && splitErr == nil {
			splitErr = errors.Wrap(err, paths[i])
		}
		if err := outs[i].Close(ctx); err != nil && splitErr == nil {
			splitErr = errors.Wrap(err, paths[i])
		}
	}
	if splitErr != nil {
		return nil, splitErr
	}
	return paths, nil
}

func (s *TenX) writeRecords(r *bam.Reader, spec technology.Spec, writers []*fastq.Writer) error {
	// Template width of each reconstructed file; the cDNA file carries
	// the record's own sequence instead.
	widths := make([]int, spec.NumFiles())
	for _, sub := range spec.Barcodes {
		if sub.Stop > widths[sub.File] {
			widths[sub.File] = sub.Stop
		}
	}
	for _, sub := range spec.UMIs {
		if sub.Stop > widths[sub.File] {
			widths[sub.File] = sub.Stop
		}
	}

	nRecords := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading BAM")
		}
		seqs := make([][]byte, spec.NumFiles())
		quals := make([][]byte, spec.NumFiles())
		for i, w := range widths {
			seqs[i] = fill(w, 'N')
			quals[i] = fill(w, 'F')
		}
		if err := place(rec, crTag, cyTag, spec.Barcodes, seqs, quals); err != nil {
			return errors.Wrapf(err, "record %s", rec.Name)
		}
		if err := place(rec, urTag, uyTag, spec.UMIs, seqs, quals); err != nil {
			return errors.Wrapf(err, "record %s", rec.Name)
		}
		seqs[spec.ReadsFile] = rec.Seq.Expand()
		quals[spec.ReadsFile] = phredString(rec.Qual)
		for i, w := range writers {
			if err := w.Write(rec.Name, string(seqs[i]), string(quals[i])); err != nil {
				return err
			}
		}
		nRecords++
		if nRecords%(1024*1024) == 0 {
			log.Printf("split %d records", nRecords)
		}
	}
	log.Printf("wrote %d records to each of %d fastq files", nRecords, len(writers))
	return nil
}

// place copies a tag value and its quality into the substring positions
// of the reconstructed reads. The 10x technologies carry a single
// barcode and a single UMI, so the tag value fills the one substring
// whole.
func place(rec *sam.Record, seqTag, qualTag sam.Tag, subs []technology.Substring, seqs, quals [][]byte) error {
	if len(subs) == 0 {
		return nil
	}
	value, ok := auxString(rec, seqTag)
	if !ok {
		return errors.Errorf("missing %v tag", seqTag)
	}
	quality, ok := auxString(rec, qualTag)
	if !ok {
		return errors.Errorf("missing %v tag", qualTag)
	}
	if len(value) != len(quality) {
		return errors.Errorf("%v and %v tags have different lengths", seqTag, qualTag)
	}
	sub := subs[0]
	if len(value) != sub.Len() {
		return errors.Errorf("%v tag has length %d, want %d", seqTag, len(value), sub.Len())
	}
	copy(seqs[sub.File][sub.Start:sub.Stop], strings.ToUpper(value))
	copy(quals[sub.File][sub.Start:sub.Stop], quality)
	return nil
}

func fill(n int, b byte) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = b
	}
	return s
}

func phredString(qual []byte) []byte {
	s := make([]byte, len(qual))
	for i, q := range qual {
		s[i] = q + 33
	}
	return s
}
