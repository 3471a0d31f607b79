package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/fequad/InputParameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unit cube as 1 + 4 corner tetrahedra, with its boundary triangles
const cubeMsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
8
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
5 0 0 1
6 1 0 1
7 1 1 1
8 0 1 1
$EndNodes
$Elements
7
1 2 2 1 1 1 2 3
2 2 2 1 1 1 3 4
3 4 2 2 1 2 4 5 7
4 4 2 2 1 1 2 4 5
5 4 2 2 1 2 3 4 7
6 4 2 2 1 5 6 2 7
7 4 2 2 1 5 7 4 8
$EndElements
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestRunVolume(t *testing.T) {
	grid := writeTemp(t, "cube.msh", cubeMsh)
	ip := &InputParameters.InputParameters{}
	require.NoError(t, ip.Parse([]byte("QuadratureOrder: 2\nWorkers: 3\nMassMatrix: true\n")))

	var buf bytes.Buffer
	require.NoError(t, RunVolume(&buf, grid, ip))
	out := buf.String()
	assert.Contains(t, out, "Elements: 5")
	assert.Contains(t, out, "Tet: quadrature order 2, 4 points")
	assert.Contains(t, out, "Total measure = 1\n")
	assert.Contains(t, out, "Sum of nodal volumes = 1\n")
	assert.Contains(t, out, "Mass matrix total = 1\n")
}

func TestRunVolumeErrors(t *testing.T) {
	ip := &InputParameters.InputParameters{}
	require.NoError(t, ip.Parse([]byte("Orders:\n  tet: 4\n")))
	var buf bytes.Buffer
	assert.Error(t, RunVolume(&buf, writeTemp(t, "cube.msh", cubeMsh), ip))
	assert.Error(t, RunVolume(&buf, filepath.Join(t.TempDir(), "none.msh"), ip))

	_, err := processVolumeInput(&ModelVolume{})
	assert.Error(t, err)
	ipd, err := processVolumeInput(&ModelVolume{GridFile: "cube.msh"})
	require.NoError(t, err)
	assert.Equal(t, InputParameters.DefaultQuadratureOrder, ipd.QuadratureOrder)

	params := writeTemp(t, "params.yaml", "Title: cube\nQuadratureOrder: 3\n")
	ipf, err := processVolumeInput(&ModelVolume{GridFile: "cube.msh", ICFile: params})
	require.NoError(t, err)
	assert.Equal(t, "cube", ipf.Title)
	assert.Equal(t, 3, ipf.QuadratureOrder)
}

func TestPrintRule(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintRule(&buf, "tri", 3, true))
	out := buf.String()
	assert.Contains(t, out, "Triangle element, 3 vertices")
	assert.Contains(t, out, "Triangle rule, order 3, 4 points")
	assert.Contains(t, out, "------- QuadData --------")

	buf.Reset()
	require.NoError(t, PrintRule(&buf, "line", 2, false))
	assert.NotContains(t, buf.String(), "QuadData")

	assert.Error(t, PrintRule(&buf, "hex", 2, false))
	assert.Error(t, PrintRule(&buf, "tet", 4, false))
}
