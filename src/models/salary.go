package models

// Feature column names, in the order the encoder sees them. Training and
// prediction both build rows through Features() so the order cannot drift.
const (
	ColJobTitle          = "job_title"
	ColExperienceLevel   = "experience_level"
	ColEmploymentType    = "employment_type"
	ColWorkModel         = "work_models"
	ColEmployeeResidence = "employee_residence"
	ColCompanyLocation   = "company_location"
	ColCompanySize       = "company_size"
	ColSalary            = "salary"
	ColSalaryCurrency    = "salary_currency"
	ColSalaryInUSD       = "salary_in_usd"
)

// FeatureColumns returns a fresh copy of the model's feature list.
func FeatureColumns() []string {
	return []string{
		ColJobTitle,
		ColExperienceLevel,
		ColEmploymentType,
		ColWorkModel,
		ColEmployeeResidence,
		ColCompanyLocation,
		ColCompanySize,
	}
}

// HistoricalRecord is one row of the training corpus.
type HistoricalRecord struct {
	JobTitle          string  `json:"job_title"`
	ExperienceLevel   string  `json:"experience_level"`
	EmploymentType    string  `json:"employment_type"`
	WorkModel         string  `json:"work_model"`
	EmployeeResidence string  `json:"employee_residence"`
	CompanyLocation   string  `json:"company_location"`
	CompanySize       string  `json:"company_size"`
	Salary            float64 `json:"salary"`
	SalaryCurrency    string  `json:"salary_currency"`
	SalaryInUSD       float64 `json:"salary_in_usd"` // set by normalization
}

// Features returns the categorical values in FeatureColumns order.
func (r HistoricalRecord) Features() []string {
	return []string{
		r.JobTitle,
		r.ExperienceLevel,
		r.EmploymentType,
		r.WorkModel,
		r.EmployeeResidence,
		r.CompanyLocation,
		r.CompanySize,
	}
}

// PredictionInput is one candidate submitted through the form or the API.
// TargetCurrency only scales the final output.
type PredictionInput struct {
	JobTitle          string `json:"job_title"`
	ExperienceLevel   string `json:"experience_level"`
	EmploymentType    string `json:"employment_type"`
	WorkModel         string `json:"work_model"`
	EmployeeResidence string `json:"employee_residence"`
	CompanyLocation   string `json:"company_location"`
	CompanySize       string `json:"company_size"`
	TargetCurrency    string `json:"target_currency"`
}

// Features returns the categorical values in FeatureColumns order.
func (in PredictionInput) Features() []string {
	return []string{
		in.JobTitle,
		in.ExperienceLevel,
		in.EmploymentType,
		in.WorkModel,
		in.EmployeeResidence,
		in.CompanyLocation,
		in.CompanySize,
	}
}
