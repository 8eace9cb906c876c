package model

// FindingRow mirrors the Parquet schema for one charted tooth in a batch
// file. Rows of one chart must be contiguous; patient-level fields are read
// from the first row of each chart.
type FindingRow struct {
	ChartID             string `parquet:"chart_id"`
	Tooth               int32  `parquet:"tooth"`
	Finding             string `parquet:"finding"`
	BonusTenureYears    int32  `parquet:"bonus_tenure_years"`
	Insurance           string `parquet:"insurance"`
	AdditionalInsurance bool   `parquet:"additional_insurance"`
}
