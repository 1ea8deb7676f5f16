// Package policy decides which actor may perform which operation on jobs and applications.
package policy

import (
	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// Operation names a guarded action.
type Operation string

const (
	PostJob                   Operation = "post_job"
	UpdateJob                 Operation = "update_job"
	DeleteJob                 Operation = "delete_job"
	ListOwnJobs               Operation = "list_own_jobs"
	PostApplication           Operation = "post_application"
	DeleteApplication         Operation = "delete_application"
	ListEmployerApplications  Operation = "list_employer_applications"
	ListJobSeekerApplications Operation = "list_job_seeker_applications"
)

// Decision is the outcome of Decide.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Actor is the per-request identity passed into every service call.
type Actor struct {
	ID   string
	Role domain.Role
}

// Anonymous reports whether no identity was resolved.
func (a Actor) Anonymous() bool {
	return a.ID == "" || !a.Role.Valid()
}

type rule struct {
	role          domain.Role
	ownerRequired bool
}

var rules = map[Operation]rule{
	PostJob:                   {role: domain.RoleEmployer},
	UpdateJob:                 {role: domain.RoleEmployer, ownerRequired: true},
	DeleteJob:                 {role: domain.RoleEmployer, ownerRequired: true},
	ListOwnJobs:               {role: domain.RoleEmployer},
	PostApplication:           {role: domain.RoleJobSeeker},
	DeleteApplication:         {role: domain.RoleJobSeeker, ownerRequired: true},
	ListEmployerApplications:  {role: domain.RoleEmployer},
	ListJobSeekerApplications: {role: domain.RoleJobSeeker},
}

// Decide is a pure function of its inputs. resourceOwnerID is ignored for operations
// that do not target an existing resource.
func Decide(actor Actor, op Operation, resourceOwnerID string) Decision {
	r, ok := rules[op]
	if !ok || actor.Anonymous() || actor.Role != r.role {
		return Deny
	}
	if r.ownerRequired && actor.ID != resourceOwnerID {
		return Deny
	}
	return Allow
}

// Authorize turns a Deny into the matching typed error: Unauthenticated for a missing
// identity, Forbidden otherwise.
func Authorize(actor Actor, op Operation, resourceOwnerID string) error {
	if Decide(actor, op, resourceOwnerID) == Allow {
		return nil
	}
	if actor.Anonymous() {
		return apperrors.NewUnauthorized("authentication required")
	}
	r, ok := rules[op]
	if !ok {
		return apperrors.NewForbidden("operation not permitted")
	}
	if actor.Role != r.role {
		return apperrors.NewForbidden(string(actor.Role) + " is not allowed to access this resource")
	}
	return apperrors.NewForbidden("you do not own this resource")
}

// AuthorizeRole checks the role half of a rule before the resource is loaded.
func AuthorizeRole(actor Actor, op Operation) error {
	r, ok := rules[op]
	if !ok {
		return apperrors.NewForbidden("operation not permitted")
	}
	if actor.Anonymous() {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Role != r.role {
		return apperrors.NewForbidden(string(actor.Role) + " is not allowed to access this resource")
	}
	return nil
}
