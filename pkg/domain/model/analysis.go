package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// StatusSuccess is the status value the analysis API sets on a
// completed transformation
const StatusSuccess = "success"

// AnalysisResponse is the top-level JSON document returned by the
// analysis endpoint.
type AnalysisResponse struct {
	Message               string                 `json:"message"`
	AnalysisComplete      bool                   `json:"analysis_complete"`
	TransformedDataResult *TransformedDataResult `json:"transformed_data_result"`
}

// TransformedDataResult wraps the transformed record set together with
// its status and summary metadata.
type TransformedDataResult struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Data     *TransformedData `json:"data"`
	Metadata *ResultMetadata  `json:"metadata"`
}

// TransformedData holds the record list and its column description
type TransformedData struct {
	Records []Record      `json:"records"`
	Format  *RecordFormat `json:"format,omitempty"`
}

// RecordFormat describes the column layout of the record set
type RecordFormat struct {
	Columns            []string          `json:"columns"`
	ColumnDescriptions map[string]string `json:"column_descriptions,omitempty"`
}

// ResultMetadata carries summary statistics computed by the analysis
// API. The pipeline only logs these values, it never derives data from
// them.
type ResultMetadata struct {
	TotalRecords     int              `json:"total_records"`
	UniqueSatellites int              `json:"unique_satellites"`
	SatelliteList    []string         `json:"satellite_list,omitempty"`
	TimeRange        *TimeRange       `json:"time_range,omitempty"`
	S4CStatistics    *S4CStatistics   `json:"s4c_statistics,omitempty"`
	GeographicBounds *GeographicBound `json:"geographic_bounds,omitempty"`
}

// TimeRange is the observation window covered by the record set
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// S4CStatistics summarizes the scintillation index distribution
type S4CStatistics struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// GeographicBound is the bounding box of the record coordinates
type GeographicBound struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}

// Records extracts the transformed record list. It fails when the
// nested result is absent, the transformation status is not success,
// or the record list is empty, so a malformed response never produces
// an empty output file.
func (r *AnalysisResponse) Records() ([]Record, error) {
	if r.TransformedDataResult == nil {
		return nil, goerr.New("response has no transformed_data_result")
	}
	if r.TransformedDataResult.Status != StatusSuccess {
		return nil, goerr.New("transformation did not succeed",
			goerr.V("status", r.TransformedDataResult.Status),
			goerr.V("message", r.TransformedDataResult.Message),
		)
	}
	if r.TransformedDataResult.Data == nil {
		return nil, goerr.New("transformed_data_result has no data")
	}
	if len(r.TransformedDataResult.Data.Records) == 0 {
		return nil, goerr.New("transformed data contains no records")
	}
	return r.TransformedDataResult.Data.Records, nil
}
