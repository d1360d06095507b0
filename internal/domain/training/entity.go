package training

import (
	"fmt"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
	EnrollmentStatusDropped    EnrollmentStatus = "dropped"
	EnrollmentStatusFailed     EnrollmentStatus = "failed"
)

// PassScore is the default passing score when completion does not state
// pass/fail explicitly.
const PassScore = 70.0

// Training entity. Seq is a per-tenant serial used in certificate numbers.
type Training struct {
	ID          string
	Seq         int
	Title       string
	Description *string

	RequiresCertification       bool
	CertificationValidityMonths *int

	EnrolledCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Enrollment is one employee's participation in a training.
type Enrollment struct {
	ID         string
	TrainingID string
	EmployeeID string

	Status             EnrollmentStatus
	ProgressPercentage float64
	Score              *float64
	Passed             *bool

	CertificateNumber    *string
	CertificateIssuedAt  *time.Time
	CertificateExpiresAt *time.Time

	EnrolledAt  time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	DroppedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	TrainingTitle *string
	EmployeeName  *string
}

// Start moves an enrolled enrollment to in_progress.
func (e *Enrollment) Start(now time.Time) error {
	if e.Status != EnrollmentStatusEnrolled {
		return ErrNotEnrolled
	}

	e.Status = EnrollmentStatusInProgress
	e.StartedAt = &now
	return nil
}

// UpdateProgress requires in_progress and a percentage in [0, 100]. Reaching
// 100 completes the enrollment.
func (e *Enrollment) UpdateProgress(percentage float64, t Training, employeeSeq int, now time.Time) error {
	if e.Status != EnrollmentStatusInProgress {
		return ErrNotInProgress
	}
	if percentage < 0 || percentage > 100 {
		return ErrProgressOutOfRange
	}

	e.ProgressPercentage = percentage
	if percentage == 100 {
		return e.Complete(nil, nil, t, employeeSeq, now)
	}
	return nil
}

// Complete finishes an in_progress enrollment. When passed is not given it is
// derived from score against PassScore. A passing completion of a training
// that requires certification issues the certificate.
func (e *Enrollment) Complete(score *float64, passed *bool, t Training, employeeSeq int, now time.Time) error {
	if e.Status != EnrollmentStatusInProgress {
		return ErrNotInProgress
	}

	e.Status = EnrollmentStatusCompleted
	e.ProgressPercentage = 100
	e.CompletedAt = &now
	if score != nil {
		e.Score = score
	}

	resolved := false
	if passed != nil {
		resolved = *passed
	} else if score != nil {
		resolved = *score >= PassScore
	}
	e.Passed = &resolved

	if t.RequiresCertification && resolved {
		number := CertificateNumber(t.Seq, employeeSeq, now)
		e.CertificateNumber = &number
		e.CertificateIssuedAt = &now
		if t.CertificationValidityMonths != nil {
			expiry := now.AddDate(0, *t.CertificationValidityMonths, 0)
			e.CertificateExpiresAt = &expiry
		}
	}

	return nil
}

// Fail marks an in_progress enrollment as failed.
func (e *Enrollment) Fail(score *float64, now time.Time) error {
	if e.Status != EnrollmentStatusInProgress {
		return ErrNotInProgress
	}

	e.Status = EnrollmentStatusFailed
	e.CompletedAt = &now
	if score != nil {
		e.Score = score
	}
	failed := false
	e.Passed = &failed
	return nil
}

// Drop abandons an enrollment. Illegal once completed or already dropped.
// The parent training's enrolled count is maintained by the event handler.
func (e *Enrollment) Drop(now time.Time) error {
	if e.Status == EnrollmentStatusCompleted {
		return ErrAlreadyCompleted
	}
	if e.Status == EnrollmentStatusDropped {
		return ErrAlreadyDropped
	}

	e.Status = EnrollmentStatusDropped
	e.DroppedAt = &now
	return nil
}

// CertificateNumber composes a certificate identifier from the training and
// employee sequences plus a unix timestamp. Uniqueness is probabilistic via
// timestamp granularity; there is no check against existing certificates.
func CertificateNumber(trainingSeq, employeeSeq int, now time.Time) string {
	return fmt.Sprintf("CERT-%d-%04d-%04d-%d", now.Year(), trainingSeq, employeeSeq, now.Unix())
}
