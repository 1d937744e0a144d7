package collision

// Summary holds the statistics derived from one analysis run.
type Summary struct {
	Total          int     `json:"total" yaml:"total"`
	Unique         int     `json:"unique" yaml:"unique"`
	Collisions     int     `json:"collisions" yaml:"collisions"`
	CollisionRate  float64 `json:"collision_rate" yaml:"collision_rate"`
	MeanBucketSize float64 `json:"mean_bucket_size" yaml:"mean_bucket_size"`
	LargestBucket  Bucket  `json:"largest_bucket" yaml:"largest_bucket"`
}

// Summarize derives a Summary from a frequency table.
// An empty table yields a zero Summary.
func Summarize(ft FrequencyTable) Summary {
	total := ft.Total()
	unique := len(ft)

	s := Summary{
		Total:      total,
		Unique:     unique,
		Collisions: total - unique,
	}

	if total == 0 {
		return s
	}

	s.CollisionRate = float64(s.Collisions) / float64(total)
	s.MeanBucketSize = float64(total) / float64(unique)
	s.LargestBucket = ft.Buckets()[0]

	return s
}
