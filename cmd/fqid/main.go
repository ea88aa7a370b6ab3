// fqid identifies which single-cell sequencing technology produced a
// set of FASTQ files, or a single BAM file, from the structural shape
// of the reads. BAM input is first split back into per-role FASTQ
// files.
//
// Exit status: 0 for a unique match, 2 for an ambiguous match, 3 when
// no technology matches, 1 for usage or input errors.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fqid/encoding/bamsplit"
	"github.com/grailbio/fqid/signature"
	"github.com/grailbio/fqid/technology"
)

var (
	prefix = flag.String("prefix", "", "Prefix for the FASTQ files generated from a BAM input")
	skip   = flag.Int("skip", 0, "Number of leading reads to skip in each FASTQ")
	sample = flag.Int("n", 1, "Number of reads per FASTQ used to pick the representative read length")
)

const (
	exitUnique    = 0
	exitError     = 1
	exitAmbiguous = 2
	exitNoMatch   = 3
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] file...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Input is either FASTQ files (.fastq or .fastq.gz) or a single BAM (.bam).\n")
	flag.PrintDefaults()
}

func allFASTQ(files []string) bool {
	for _, f := range files {
		if !strings.HasSuffix(f, ".fastq") && !strings.HasSuffix(f, ".fastq.gz") {
			return false
		}
	}
	return true
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	files := flag.Args()
	if len(files) == 0 {
		usage()
		return exitError
	}

	ctx := vcontext.Background()
	var fastqs []string
	switch {
	case len(files) == 1 && strings.HasSuffix(files[0], ".bam"):
		log.Printf("running in BAM mode")
		splitter := &bamsplit.TenX{}
		paths, err := splitter.Split(ctx, files[0], *prefix)
		if err != nil {
			log.Error.Printf("%v", err)
			return exitError
		}
		fmt.Printf("fastq files: %s\n", strings.Join(paths, " "))
		fastqs = paths
	case allFASTQ(files):
		log.Printf("running in FASTQ mode")
		fastqs = files
	default:
		log.Error.Printf("input must be FASTQ files (.fastq or .fastq.gz) or a single BAM (.bam)")
		return exitError
	}

	sig, err := signature.Extract(ctx, fastqs, signature.Opts{Skip: *skip, Sample: *sample})
	if err != nil {
		log.Error.Printf("%v", err)
		return exitError
	}
	result := signature.Match(sig, technology.All())
	fmt.Print(result.Report(sig))

	switch result.Status {
	case signature.Unique:
		return exitUnique
	case signature.Ambiguous:
		return exitAmbiguous
	}
	return exitNoMatch
}
