package mesh

import "github.com/notargets/fequad/element"

// ElementTypeMap translates a file format's integer cell code to a family.
// Codes that are absent are not linear cells of a supported family.
type ElementTypeMap map[int]element.Family

// VTKElementTypes are the VTK_LINE, VTK_TRIANGLE, VTK_QUAD and VTK_TETRA codes.
func VTKElementTypes() ElementTypeMap {
	return ElementTypeMap{
		3:  element.Line,
		5:  element.Triangle,
		9:  element.Quad,
		10: element.Tet,
	}
}

// GmshElementTypes are the first order Gmsh 2.2 codes.
func GmshElementTypes() ElementTypeMap {
	return ElementTypeMap{
		1: element.Line,
		2: element.Triangle,
		3: element.Quad,
		4: element.Tet,
	}
}

func (tm ElementTypeMap) Lookup(code int) (f element.Family, ok bool) {
	f, ok = tm[code]
	return
}
