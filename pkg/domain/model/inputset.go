package model

import (
	"os"
	"path/filepath"
)

// Multipart field names expected by the analysis endpoint
const (
	FieldS4C = "s4c_file"
	FieldLat = "lat_file"
	FieldLon = "lon_file"
)

// InputFileSet names the three receiver CSV files consumed by one
// cycle. The files are only checked for existence, never parsed
// locally.
type InputFileSet struct {
	S4CPath string // scintillation index samples
	LatPath string // latitude samples
	LonPath string // longitude samples
}

// NewInputFileSet builds the set from a data directory and the three
// file names.
func NewInputFileSet(dataDir, s4cFile, latFile, lonFile string) InputFileSet {
	return InputFileSet{
		S4CPath: filepath.Join(dataDir, s4cFile),
		LatPath: filepath.Join(dataDir, latFile),
		LonPath: filepath.Join(dataDir, lonFile),
	}
}

// Fields maps multipart field name to local file path
func (s InputFileSet) Fields() map[string]string {
	return map[string]string{
		FieldS4C: s.S4CPath,
		FieldLat: s.LatPath,
		FieldLon: s.LonPath,
	}
}

// Missing returns the paths that do not currently exist on disk
func (s InputFileSet) Missing() []string {
	var missing []string
	for _, path := range []string{s.S4CPath, s.LatPath, s.LonPath} {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	return missing
}
