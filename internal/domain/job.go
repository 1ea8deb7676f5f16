package domain

import (
	"errors"
	"strings"
	"time"
)

// SalaryKind tags which representation a Salary carries.
type SalaryKind string

const (
	SalaryFixed SalaryKind = "fixed"
	SalaryRange SalaryKind = "range"
)

var (
	ErrSalaryMissing   = errors.New("either a fixed salary or a salary range is required")
	ErrSalaryAmbiguous = errors.New("provide either a fixed salary or a salary range, not both")
	ErrSalaryInvalid   = errors.New("salary amounts must be positive and from must not exceed to")
)

// Salary is either Fixed(Amount) or Range(From, To). The zero value is neither.
type Salary struct {
	Kind   SalaryKind
	Amount int64
	From   int64
	To     int64
}

// FixedSalary builds a fixed salary.
func FixedSalary(amount int64) Salary {
	return Salary{Kind: SalaryFixed, Amount: amount}
}

// RangeSalary builds a from/to salary range.
func RangeSalary(from, to int64) Salary {
	return Salary{Kind: SalaryRange, From: from, To: to}
}

// SalaryFromParts resolves the wire shape (fixedSalary, salaryFrom, salaryTo) into a Salary.
// Exactly one of the two forms must be populated.
func SalaryFromParts(fixed, from, to *int64) (Salary, error) {
	hasFixed := fixed != nil
	hasRange := from != nil || to != nil
	switch {
	case hasFixed && hasRange:
		return Salary{}, ErrSalaryAmbiguous
	case hasFixed:
		s := FixedSalary(*fixed)
		return s, s.Validate()
	case hasRange:
		if from == nil || to == nil {
			return Salary{}, ErrSalaryMissing
		}
		s := RangeSalary(*from, *to)
		return s, s.Validate()
	default:
		return Salary{}, ErrSalaryMissing
	}
}

// Validate checks the variant is populated consistently.
func (s Salary) Validate() error {
	switch s.Kind {
	case SalaryFixed:
		if s.Amount <= 0 {
			return ErrSalaryInvalid
		}
	case SalaryRange:
		if s.From <= 0 || s.To <= 0 || s.From > s.To {
			return ErrSalaryInvalid
		}
	default:
		return ErrSalaryMissing
	}
	return nil
}

// Parts returns the nullable column/wire representation.
func (s Salary) Parts() (fixed, from, to *int64) {
	switch s.Kind {
	case SalaryFixed:
		amount := s.Amount
		return &amount, nil, nil
	case SalaryRange:
		lo, hi := s.From, s.To
		return nil, &lo, &hi
	}
	return nil, nil, nil
}

// Job is a posting owned by exactly one Employer.
type Job struct {
	ID          string
	Title       string
	Description string
	Category    string
	Country     string
	City        string
	Location    string
	Salary      Salary
	Expired     bool
	PostedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MissingFields lists required text fields that are blank.
func (j *Job) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", j.Title},
		{"description", j.Description},
		{"category", j.Category},
		{"country", j.Country},
		{"city", j.City},
		{"location", j.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// JobCategories is the fixed category list offered to posting forms.
var JobCategories = []string{
	"Graphics & Design",
	"Mobile App Development",
	"Frontend Web Development",
	"MERN Stack Development",
	"Account & Finance",
	"Artificial Intelligence",
	"Video Animation",
	"MEAN Stack Development",
	"MEVN Stack Development",
	"Data Entry Operator",
}
