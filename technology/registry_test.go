package technology_test

import (
	"testing"

	"github.com/grailbio/fqid/technology"
	"github.com/stretchr/testify/assert"
)

func TestRegistrySelfConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range technology.All() {
		assert.NotEmpty(t, spec.Name)
		assert.False(t, seen[spec.Name], "duplicate name %s", spec.Name)
		seen[spec.Name] = true

		assert.NotEmpty(t, spec.Roles, spec.Name)
		for _, role := range spec.Roles {
			r, ok := spec.RoleLengths[role]
			assert.True(t, ok, "%s: role %s has no length range", spec.Name, role)
			assert.True(t, 1 <= r.Min && r.Min <= r.Max, "%s: bad range for %s", spec.Name, role)
		}
		assert.True(t, spec.ReadsFile >= 0 && spec.ReadsFile < spec.NumFiles(), spec.Name)
		for _, sub := range append(spec.Barcodes, spec.UMIs...) {
			assert.True(t, sub.File >= 0 && sub.File < spec.NumFiles(), spec.Name)
			assert.True(t, sub.Start >= 0 && sub.Start < sub.Stop, spec.Name)
			assert.True(t, sub.Stop <= spec.LengthRangeAt(sub.File).Max, spec.Name)
		}
	}
}

func TestRegistryCatalog(t *testing.T) {
	var names []string
	for _, spec := range technology.All() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"10xv1", "10xv2", "10xv3", "dropseq", "indropsv3"}, names)

	v2, ok := technology.Lookup("10xv2")
	assert.True(t, ok)
	assert.Equal(t, 2, v2.NumFiles())
	assert.Equal(t, technology.LengthRange{Min: 26, Max: 26}, v2.LengthRangeAt(0))
	assert.Equal(t, 16, v2.BarcodeLength())
	assert.Equal(t, 10, v2.UMILength())

	v1, ok := technology.Lookup("10xv1")
	assert.True(t, ok)
	assert.Equal(t, 3, v1.NumFiles())
	assert.Equal(t, 2, v1.ReadsFile)

	_, ok = technology.Lookup("10xv9")
	assert.False(t, ok)
}

func TestLengthRange(t *testing.T) {
	tests := []struct {
		r        technology.LengthRange
		n        int
		contains bool
	}{
		{technology.LengthRange{Min: 26, Max: 26}, 26, true},
		{technology.LengthRange{Min: 26, Max: 26}, 25, false},
		{technology.LengthRange{Min: 26, Max: 26}, 27, false},
		{technology.LengthRange{Min: 24, Max: 28}, 26, true},
		{technology.LengthRange{Min: 24, Max: 28}, 24, true},
		{technology.LengthRange{Min: 24, Max: 28}, 28, true},
		{technology.LengthRange{Min: 24, Max: 28}, 29, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.contains, test.r.Contains(test.n), "%+v contains %d", test.r, test.n)
	}
	assert.Equal(t, 0, technology.LengthRange{Min: 26, Max: 26}.Width())
	assert.Equal(t, 4, technology.LengthRange{Min: 24, Max: 28}.Width())
}

func TestSpecTotalWidth(t *testing.T) {
	spec := technology.Spec{
		Name:  "w",
		Roles: []technology.Role{technology.BarcodeUMI, technology.CDNA},
		RoleLengths: map[technology.Role]technology.LengthRange{
			technology.BarcodeUMI: {Min: 24, Max: 28},
			technology.CDNA:       {Min: 1, Max: 101},
		},
	}
	assert.Equal(t, 104, spec.TotalWidth())
}
