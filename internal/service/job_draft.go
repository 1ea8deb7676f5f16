package service

import (
	"context"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/policy"
)

// JobDraft is a local editable copy of a Job. Edits stay local until Commit.
type JobDraft struct {
	service  *JobService
	actor    policy.Actor
	original domain.Job
	edited   domain.Job
}

// NewJobDraft starts a draft from the job as last read from the service.
func NewJobDraft(svc *JobService, actor policy.Actor, job domain.Job) *JobDraft {
	return &JobDraft{service: svc, actor: actor, original: job, edited: job}
}

// Current returns the draft's working copy.
func (d *JobDraft) Current() domain.Job { return d.edited }

// Setters edit the working copy only.

func (d *JobDraft) SetTitle(v string) { d.edited.Title = v }
func (d *JobDraft) SetDescription(v string) { d.edited.Description = v }
func (d *JobDraft) SetCategory(v string) { d.edited.Category = v }
func (d *JobDraft) SetCountry(v string) { d.edited.Country = v }
func (d *JobDraft) SetCity(v string) { d.edited.City = v }
func (d *JobDraft) SetLocation(v string) { d.edited.Location = v }
func (d *JobDraft) SetSalary(v domain.Salary) { d.edited.Salary = v }
func (d *JobDraft) SetExpired(v bool) { d.edited.Expired = v }

// Changed reports whether the working copy differs from the original.
func (d *JobDraft) Changed() bool {
	return !d.patch().Empty()
}

// Discard drops local edits.
func (d *JobDraft) Discard() {
	d.edited = d.original
}

// Commit sends only the changed fields. On success the draft adopts the stored job;
// on failure local edits are kept so the caller can retry or discard.
func (d *JobDraft) Commit(ctx context.Context) (*domain.Job, error) {
	patch := d.patch()
	if patch.Empty() {
		job := d.original
		return &job, nil
	}
	updated, err := d.service.Update(ctx, d.actor, d.original.ID, patch)
	if err != nil {
		return nil, err
	}
	d.original = *updated
	d.edited = *updated
	return updated, nil
}

func (d *JobDraft) patch() JobPatch {
	var p JobPatch
	o, e := d.original, d.edited
	if e.Title != o.Title {
		p.Title = &e.Title
	}
	if e.Description != o.Description {
		p.Description = &e.Description
	}
	if e.Category != o.Category {
		p.Category = &e.Category
	}
	if e.Country != o.Country {
		p.Country = &e.Country
	}
	if e.City != o.City {
		p.City = &e.City
	}
	if e.Location != o.Location {
		p.Location = &e.Location
	}
	if e.Salary != o.Salary {
		p.Salary = &e.Salary
	}
	if e.Expired != o.Expired {
		p.Expired = &e.Expired
	}
	return p
}
