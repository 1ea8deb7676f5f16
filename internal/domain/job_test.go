package domain

import (
	"errors"
	"testing"
)

func ptr(v int64) *int64 { return &v }

func TestSalaryFromParts(t *testing.T) {
	cases := []struct {
		name    string
		fixed   *int64
		from    *int64
		to      *int64
		want    Salary
		wantErr error
	}{
		{"fixed", ptr(5000), nil, nil, FixedSalary(5000), nil},
		{"range", nil, ptr(1000), ptr(2000), RangeSalary(1000, 2000), nil},
		{"both", ptr(5000), ptr(1000), ptr(2000), Salary{}, ErrSalaryAmbiguous},
		{"fixed with partial range", ptr(5000), ptr(1000), nil, Salary{}, ErrSalaryAmbiguous},
		{"neither", nil, nil, nil, Salary{}, ErrSalaryMissing},
		{"half range", nil, ptr(1000), nil, Salary{}, ErrSalaryMissing},
		{"inverted range", nil, ptr(3000), ptr(2000), RangeSalary(3000, 2000), ErrSalaryInvalid},
		{"zero fixed", ptr(0), nil, nil, FixedSalary(0), ErrSalaryInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SalaryFromParts(tc.fixed, tc.from, tc.to)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("salary = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSalaryParts(t *testing.T) {
	fixed, from, to := FixedSalary(10).Parts()
	if fixed == nil || *fixed != 10 || from != nil || to != nil {
		t.Fatalf("fixed parts wrong: %v %v %v", fixed, from, to)
	}
	fixed, from, to = RangeSalary(1, 2).Parts()
	if fixed != nil || from == nil || *from != 1 || to == nil || *to != 2 {
		t.Fatalf("range parts wrong: %v %v %v", fixed, from, to)
	}
}

func TestJobMissingFields(t *testing.T) {
	job := Job{Title: "Backend Engineer", Description: " ", Category: "IT", Country: "PK", City: "Lahore"}
	missing := job.MissingFields()
	if len(missing) != 2 || missing[0] != "description" || missing[1] != "location" {
		t.Fatalf("missing = %v", missing)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleEmployer.Valid() || !RoleJobSeeker.Valid() {
		t.Fatal("known roles must be valid")
	}
	if Role("Admin").Valid() {
		t.Fatal("unknown role must be invalid")
	}
}
