package models

// TitleSalary is one bar of the "Salary Distribution by Job Title" chart.
type TitleSalary struct {
	JobTitle string  `json:"job_title"`
	TotalUSD float64 `json:"total_usd"`
	MeanUSD  float64 `json:"mean_usd"`
	Count    int     `json:"count"`
}

// ExperienceSalaryRange is one box of the "Salary vs Experience Level" chart.
type ExperienceSalaryRange struct {
	ExperienceLevel string  `json:"experience_level"`
	Min             float64 `json:"min"`
	Q1              float64 `json:"q1"`
	Median          float64 `json:"median"`
	Q3              float64 `json:"q3"`
	Max             float64 `json:"max"`
	Count           int     `json:"count"`
}
