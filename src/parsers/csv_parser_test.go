package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/username/salarypredictor/src/models"
)

const sampleCSV = `job_title,experience_level,employment_type,work_models,employee_residence,company_location,company_size,salary,salary_currency
Data Scientist,Senior-level,Full-time,Remote,United States,United States,Large,150000,USD
R&D Engineer,Mid-level,Full-time,Hybrid,Germany,Germany,Medium,"70,000",eur
`

func TestCSVParser_Parse(t *testing.T) {
	recs, err := NewCSVParser().Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].JobTitle != "Data Scientist" || recs[0].Salary != 150000 || recs[0].WorkModel != "Remote" {
		t.Errorf("unexpected first record: %+v", recs[0])
	}
	if recs[1].JobTitle != "R&D Engineer" {
		t.Errorf("JobTitle = %q, want %q", recs[1].JobTitle, "R&D Engineer")
	}
	if recs[1].SalaryCurrency != "EUR" || recs[1].Salary != 70000 {
		t.Errorf("unexpected second record: %+v", recs[1])
	}
	if recs[0].SalaryInUSD != 0 {
		t.Error("parser must not set salary_in_usd")
	}
}

func TestCSVParser_ReorderedHeaderAndAlias(t *testing.T) {
	data := "salary_currency,salary,company_size,company_location,employee_residence,work_model,employment_type,experience_level,job_title,notes\n" +
		"GBP,50000,Small,UK,UK,On-site,Contract,Entry-level,Analyst,ignored\n"
	recs, err := NewCSVParser().Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.JobTitle != "Analyst" || r.WorkModel != "On-site" || r.SalaryCurrency != "GBP" || r.CompanySize != "Small" {
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestCSVParser_SkipsInvalidRows(t *testing.T) {
	data := sampleCSV +
		"Broken,Mid-level,Full-time,Remote,US,US,Medium,not-a-number,USD\n" +
		"Negative,Mid-level,Full-time,Remote,US,US,Medium,-5,USD\n" +
		",Mid-level,Full-time,Remote,US,US,Medium,100000,USD\n" +
		"<script></script>,Mid-level,Full-time,Remote,US,US,Medium,100000,USD\n" +
		"Engineer,Mid-level,Full-time,Remote,US,US,,100000,USD\n" +
		",,,,,,,,\n"
	recs, err := NewCSVParser().Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		for i, v := range rec.Features() {
			if v == "" {
				t.Errorf("record %+v kept with empty %s", rec, models.FeatureColumns()[i])
			}
		}
	}
}

func TestCSVParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty file", "", ErrEmptyCorpus},
		{"header only", strings.SplitN(sampleCSV, "\n", 2)[0] + "\n", ErrEmptyCorpus},
		{"missing column", "job_title,salary\nAnalyst,100\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse(strings.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
