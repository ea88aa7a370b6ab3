package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllFASTQ(t *testing.T) {
	tests := []struct {
		files []string
		want  bool
	}{
		{[]string{"a.fastq", "b.fastq.gz"}, true},
		{[]string{"a.fastq", "b.bam"}, false},
		{[]string{"a.fq"}, false},
		{nil, true},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, allFASTQ(test.files), "%v", test.files)
	}
}
