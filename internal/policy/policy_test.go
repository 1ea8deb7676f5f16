package policy

import (
	"testing"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

func TestDecide(t *testing.T) {
	employer := Actor{ID: "e1", Role: domain.RoleEmployer}
	seeker := Actor{ID: "s1", Role: domain.RoleJobSeeker}
	anonymous := Actor{}

	cases := []struct {
		name  string
		actor Actor
		op    Operation
		owner string
		want  Decision
	}{
		{"employer posts job", employer, PostJob, "", Allow},
		{"seeker posts job", seeker, PostJob, "", Deny},
		{"owner updates job", employer, UpdateJob, "e1", Allow},
		{"non-owner updates job", employer, UpdateJob, "e2", Deny},
		{"owner deletes job", employer, DeleteJob, "e1", Allow},
		{"seeker deletes job with matching id", Actor{ID: "e1", Role: domain.RoleJobSeeker}, DeleteJob, "e1", Deny},
		{"seeker applies", seeker, PostApplication, "", Allow},
		{"employer applies", employer, PostApplication, "", Deny},
		{"creator deletes application", seeker, DeleteApplication, "s1", Allow},
		{"other seeker deletes application", seeker, DeleteApplication, "s2", Deny},
		{"employer lists received applications", employer, ListEmployerApplications, "", Allow},
		{"seeker lists employer view", seeker, ListEmployerApplications, "", Deny},
		{"seeker lists own applications", seeker, ListJobSeekerApplications, "", Allow},
		{"anonymous", anonymous, PostJob, "", Deny},
		{"unknown operation", employer, Operation("rename_job"), "", Deny},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.actor, tc.op, tc.owner); got != tc.want {
				t.Fatalf("Decide = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAuthorizeErrorKinds(t *testing.T) {
	if err := Authorize(Actor{}, PostJob, ""); !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
		t.Fatalf("anonymous: got %v", err)
	}
	seeker := Actor{ID: "s1", Role: domain.RoleJobSeeker}
	if err := Authorize(seeker, PostJob, ""); !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Fatalf("wrong role: got %v", err)
	}
	employer := Actor{ID: "e1", Role: domain.RoleEmployer}
	if err := Authorize(employer, UpdateJob, "e2"); !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Fatalf("non-owner: got %v", err)
	}
	if err := Authorize(employer, UpdateJob, "e1"); err != nil {
		t.Fatalf("owner: got %v", err)
	}
}

func TestAuthorizeRole(t *testing.T) {
	employer := Actor{ID: "e1", Role: domain.RoleEmployer}
	if err := AuthorizeRole(employer, DeleteJob); err != nil {
		t.Fatalf("employer: %v", err)
	}
	seeker := Actor{ID: "s1", Role: domain.RoleJobSeeker}
	if err := AuthorizeRole(seeker, DeleteJob); !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Fatalf("seeker: got %v", err)
	}
}
