package model

import "strconv"

// Record is one computed scintillation sample returned by the analysis
// API. JSON keys are capitalized to match the API payload verbatim.
type Record struct {
	Satellite string  `json:"Satellite"`
	Time      string  `json:"Time"`
	S4C       float64 `json:"S4C"`
	Lat       float64 `json:"Lat"`
	Lon       float64 `json:"Lon"`
}

// CSVHeader is the fixed column order of the output file
var CSVHeader = []string{"Satellite", "Time", "S4C", "Lat", "Lon"}

// CSVRow renders the record in CSVHeader order
func (r *Record) CSVRow() []string {
	return []string{
		r.Satellite,
		r.Time,
		strconv.FormatFloat(r.S4C, 'g', -1, 64),
		strconv.FormatFloat(r.Lat, 'g', -1, 64),
		strconv.FormatFloat(r.Lon, 'g', -1, 64),
	}
}
