package signature_test

import (
	"fmt"
	"testing"

	"github.com/grailbio/fqid/signature"
	"github.com/grailbio/fqid/technology"
	"github.com/stretchr/testify/assert"
)

// testSpec builds a spec with one synthetic role per length range.
func testSpec(name string, ranges ...technology.LengthRange) technology.Spec {
	roles := make([]technology.Role, len(ranges))
	lengths := map[technology.Role]technology.LengthRange{}
	for i, r := range ranges {
		role := technology.Role(fmt.Sprintf("file%d", i))
		roles[i] = role
		lengths[role] = r
	}
	return technology.Spec{Name: name, Roles: roles, RoleLengths: lengths}
}

func sig(lengths ...int) signature.Signature {
	return signature.Signature{FileCount: len(lengths), Lengths: lengths}
}

func TestMatchThreeWayDiscrimination(t *testing.T) {
	cdna := technology.LengthRange{Min: 90, Max: technology.MaxReadLength}
	specs := []technology.Spec{
		testSpec("a", technology.LengthRange{Min: 16, Max: 16}, cdna),
		testSpec("b", technology.LengthRange{Min: 24, Max: 24}, cdna),
		testSpec("c", technology.LengthRange{Min: 26, Max: 26}, cdna),
	}
	tests := []struct {
		sig  signature.Signature
		want string
	}{
		{sig(16, 91), "a"},
		{sig(24, 91), "b"},
		{sig(26, 91), "c"},
	}
	for _, test := range tests {
		result := signature.Match(test.sig, specs)
		assert.Equal(t, signature.Unique, result.Status, "%v", test.sig)
		assert.Equal(t, []string{test.want}, result.Candidates, "%v", test.sig)
	}
}

func TestMatchFileCountIsHard(t *testing.T) {
	// Lengths fit the first two roles, but the file counts differ.
	specs := []technology.Spec{
		testSpec("three-files",
			technology.LengthRange{Min: 16, Max: 16},
			technology.LengthRange{Min: 10, Max: 10},
			technology.LengthRange{Min: 1, Max: technology.MaxReadLength}),
	}
	result := signature.Match(sig(16, 10), specs)
	assert.Equal(t, signature.NoMatch, result.Status)
	assert.Empty(t, result.Candidates)
}

func TestMatchNoMatch(t *testing.T) {
	specs := []technology.Spec{
		testSpec("a", technology.LengthRange{Min: 16, Max: 16}),
	}
	result := signature.Match(sig(17), specs)
	assert.Equal(t, signature.NoMatch, result.Status)
	assert.Empty(t, result.Candidates)
}

func TestMatchAmbiguousRankedByWidth(t *testing.T) {
	// Both specs accept length 26 at position 0; the narrower one must
	// rank first even though it is declared second.
	specs := []technology.Spec{
		testSpec("loose", technology.LengthRange{Min: 20, Max: 30}),
		testSpec("tight", technology.LengthRange{Min: 24, Max: 28}),
	}
	result := signature.Match(sig(26), specs)
	assert.Equal(t, signature.Ambiguous, result.Status)
	assert.Equal(t, []string{"tight", "loose"}, result.Candidates)
}

func TestMatchAmbiguousTieByDeclarationOrder(t *testing.T) {
	specs := []technology.Spec{
		testSpec("first", technology.LengthRange{Min: 24, Max: 28}),
		testSpec("second", technology.LengthRange{Min: 22, Max: 26}),
	}
	result := signature.Match(sig(26), specs)
	assert.Equal(t, signature.Ambiguous, result.Status)
	assert.Equal(t, []string{"first", "second"}, result.Candidates)
}

func TestMatchIdempotent(t *testing.T) {
	specs := []technology.Spec{
		testSpec("loose", technology.LengthRange{Min: 20, Max: 30}),
		testSpec("tight", technology.LengthRange{Min: 24, Max: 28}),
	}
	s := sig(26)
	first := signature.Match(s, specs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, signature.Match(s, specs))
	}
}

func TestMatchRegistry(t *testing.T) {
	tests := []struct {
		sig    signature.Signature
		status signature.Status
		want   []string
	}{
		{sig(14, 10, 98), signature.Unique, []string{"10xv1"}},
		{sig(26, 98), signature.Unique, []string{"10xv2"}},
		{sig(28, 98), signature.Unique, []string{"10xv3"}},
		{sig(20, 98), signature.Unique, []string{"dropseq"}},
		{sig(8, 14, 98), signature.Unique, []string{"indropsv3"}},
		{sig(27, 98), signature.NoMatch, nil},
		{sig(26), signature.NoMatch, nil},
		{sig(26, 98, 98, 98), signature.NoMatch, nil},
	}
	for _, test := range tests {
		result := signature.Match(test.sig, technology.All())
		assert.Equal(t, test.status, result.Status, "%v", test.sig)
		assert.Equal(t, test.want, result.Candidates, "%v", test.sig)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unique", signature.Unique.String())
	assert.Equal(t, "ambiguous", signature.Ambiguous.String())
	assert.Equal(t, "no match", signature.NoMatch.String())
}
