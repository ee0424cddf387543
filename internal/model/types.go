package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// LandscapeParams is the persisted form of a run's landscape configuration.
// For the simple shape only the left-hand fields are populated.
type LandscapeParams struct {
	SLeft     float64 `json:"s_left"`
	SRight    float64 `json:"s_right,omitempty"`
	EpsLeft   float64 `json:"eps_left"`
	EpsRight  float64 `json:"eps_right,omitempty"`
	SizeLeft  int     `json:"size_left"`
	SizeRight int     `json:"size_right,omitempty"`
	PRight    float64 `json:"p_right,omitempty"`
}

// RunRecord describes one completed simulation run.
type RunRecord struct {
	VersionedRecord
	ID              string          `json:"id"`
	CreatedAtUTC    string          `json:"created_at_utc"`
	Shape           string          `json:"shape"`
	Seed            uint64          `json:"seed"`
	Population      int             `json:"population"`
	Generations     int             `json:"generations"`
	BeneficialRate  float64         `json:"beneficial_rate"`
	DeleteriousRate float64         `json:"deleterious_rate"`
	Landscape       LandscapeParams `json:"landscape"`
}

// SeriesPoint is one generation's (mean, variance) pair inside a named
// statistics series.
type SeriesPoint struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}
