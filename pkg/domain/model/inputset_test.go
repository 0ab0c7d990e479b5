package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

func TestInputFileSet_Missing(t *testing.T) {
	dir := t.TempDir()
	inputs := model.NewInputFileSet(dir,
		"SN560_S4C_last15min.csv",
		"SN560_Lat_last15min.csv",
		"SN560_Lon_last15min.csv",
	)

	// Nothing on disk yet
	gt.Number(t, len(inputs.Missing())).Equal(3)

	// Two of three present
	gt.NoError(t, os.WriteFile(inputs.S4CPath, []byte("s4c"), 0644))
	gt.NoError(t, os.WriteFile(inputs.LatPath, []byte("lat"), 0644))
	missing := inputs.Missing()
	gt.Number(t, len(missing)).Equal(1)
	gt.Value(t, missing[0]).Equal(filepath.Join(dir, "SN560_Lon_last15min.csv"))

	// All present
	gt.NoError(t, os.WriteFile(inputs.LonPath, []byte("lon"), 0644))
	gt.Number(t, len(inputs.Missing())).Equal(0)
}

func TestInputFileSet_Fields(t *testing.T) {
	inputs := model.NewInputFileSet("/data", "s4c.csv", "lat.csv", "lon.csv")

	fields := inputs.Fields()
	gt.Number(t, len(fields)).Equal(3)
	gt.Value(t, fields[model.FieldS4C]).Equal(filepath.Join("/data", "s4c.csv"))
	gt.Value(t, fields[model.FieldLat]).Equal(filepath.Join("/data", "lat.csv"))
	gt.Value(t, fields[model.FieldLon]).Equal(filepath.Join("/data", "lon.csv"))
}
