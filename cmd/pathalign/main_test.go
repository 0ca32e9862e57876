package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackgeo/internal/fsutil"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want string
	}{
		{
			name: "project",
			mode: modeProject,
			want: "x,y,yaw\n0.500000,0.000000,0.1\n2.000000,0.000000,0.2\n",
		},
		{
			name: "shift",
			mode: modeShift,
			want: "x,y,yaw\n0.000000,0.000000,0.1\n12.500000,1.000000,0.2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fsutil.NewMemoryFileSystem()
			fsys.WriteFile("/ref.csv", []byte("x,y\n0,0\n2,0\n"))
			fsys.WriteFile("/in.csv", []byte("x,y,yaw\n0.5,3,0.1\n13,4,0.2\n"))

			n, err := run(fsys, tt.mode, "/ref.csv", "/in.csv", "/out.csv", 1)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			got, err := fsys.ReadFile("/out.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRun_Errors(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	fsys.WriteFile("/ref.csv", []byte("x,y\n0,0\n"))
	fsys.WriteFile("/in.csv", []byte("x,y\n1,1\n"))

	_, err := run(fsys, "rotate", "/ref.csv", "/in.csv", "/out.csv", 1)
	assert.ErrorContains(t, err, "unknown mode")

	_, err = run(fsys, modeProject, "/ref.csv", "/in.csv", "/out.csv", 1)
	assert.Error(t, err, "single-point reference")

	_, err = run(fsys, modeProject, "/missing.csv", "/in.csv", "/out.csv", 1)
	assert.ErrorContains(t, err, "reference")
	assert.False(t, fsys.Exists("/out.csv"))
}
