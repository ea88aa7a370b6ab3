package technology

import "fmt"

// cDNA reads are not length-constrained by the chemistry.
var anyLength = LengthRange{Min: 1, Max: MaxReadLength}

// registry is the catalog of supported technologies, in declaration
// order. The order is part of the public contract: signature matching
// breaks exact ties by declaration order.
var registry = []Spec{
	{
		Name:        "10xv1",
		Description: "10x version 1",
		Roles:       []Role{Barcode, UMI, CDNA},
		RoleLengths: map[Role]LengthRange{
			Barcode: {Min: 14, Max: 14},
			UMI:     {Min: 10, Max: 10},
			CDNA:    anyLength,
		},
		Barcodes:  []Substring{{File: 0, Start: 0, Stop: 14}},
		UMIs:      []Substring{{File: 1, Start: 0, Stop: 10}},
		ReadsFile: 2,
		Whitelist: "10xv1_whitelist.txt.gz",
	},
	{
		Name:        "10xv2",
		Description: "10x version 2",
		Roles:       []Role{BarcodeUMI, CDNA},
		RoleLengths: map[Role]LengthRange{
			BarcodeUMI: {Min: 26, Max: 26},
			CDNA:       anyLength,
		},
		Barcodes:  []Substring{{File: 0, Start: 0, Stop: 16}},
		UMIs:      []Substring{{File: 0, Start: 16, Stop: 26}},
		ReadsFile: 1,
		Whitelist: "10xv2_whitelist.txt.gz",
	},
	{
		Name:        "10xv3",
		Description: "10x version 3",
		Roles:       []Role{BarcodeUMI, CDNA},
		RoleLengths: map[Role]LengthRange{
			BarcodeUMI: {Min: 28, Max: 28},
			CDNA:       anyLength,
		},
		Barcodes:  []Substring{{File: 0, Start: 0, Stop: 16}},
		UMIs:      []Substring{{File: 0, Start: 16, Stop: 28}},
		ReadsFile: 1,
		Whitelist: "10xv3_whitelist.txt.gz",
	},
	{
		Name:        "dropseq",
		Description: "DropSeq",
		Roles:       []Role{BarcodeUMI, CDNA},
		RoleLengths: map[Role]LengthRange{
			BarcodeUMI: {Min: 20, Max: 20},
			CDNA:       anyLength,
		},
		Barcodes:  []Substring{{File: 0, Start: 0, Stop: 12}},
		UMIs:      []Substring{{File: 0, Start: 12, Stop: 20}},
		ReadsFile: 1,
	},
	{
		Name:        "indropsv3",
		Description: "inDrops version 3",
		Roles:       []Role{Barcode, BarcodeUMI, CDNA},
		RoleLengths: map[Role]LengthRange{
			Barcode:    {Min: 8, Max: 8},
			BarcodeUMI: {Min: 14, Max: 14},
			CDNA:       anyLength,
		},
		Barcodes: []Substring{
			{File: 0, Start: 0, Stop: 8},
			{File: 1, Start: 0, Stop: 8},
		},
		UMIs:      []Substring{{File: 1, Start: 8, Stop: 14}},
		ReadsFile: 2,
		Whitelist: "indropsv3_whitelist.txt.gz",
	},
}

var registryByName = map[string]Spec{}

func init() {
	for _, spec := range registry {
		if err := spec.validate(); err != nil {
			panic(err)
		}
		if _, ok := registryByName[spec.Name]; ok {
			panic(fmt.Sprintf("duplicate technology %s", spec.Name))
		}
		registryByName[spec.Name] = spec
	}
}

// All returns every supported technology in declaration order. The
// returned slice is shared; callers must not modify it.
func All() []Spec {
	return registry
}

// Lookup returns the technology with the given name.
func Lookup(name string) (Spec, bool) {
	spec, ok := registryByName[name]
	return spec, ok
}
