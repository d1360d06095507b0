package leave

import (
	"testing"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveRequest_Approve_Pending(t *testing.T) {
	t.Parallel()
	now := date(2024, time.June, 3)
	req := LeaveRequest{Status: LeaveRequestStatusPending}

	err := req.Approve("approver-1", nil, now)

	require.NoError(t, err)
	assert.Equal(t, LeaveRequestStatusApproved, req.Status)
	require.NotNil(t, req.ApprovedAt)
	assert.Equal(t, now, *req.ApprovedAt)
	require.NotNil(t, req.ApprovedBy)
	assert.Equal(t, "approver-1", *req.ApprovedBy)
	assert.Nil(t, req.RejectionReason)
}

func TestLeaveRequest_Approve_AlreadyProcessed(t *testing.T) {
	t.Parallel()
	now := time.Now()

	for _, status := range []LeaveRequestStatus{
		LeaveRequestStatusApproved,
		LeaveRequestStatusRejected,
		LeaveRequestStatusCancelled,
	} {
		req := LeaveRequest{Status: status}
		err := req.Approve("approver-1", nil, now)

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
		assert.Equal(t, status, req.Status, "status must not change on illegal transition")
		assert.Nil(t, req.ApprovedAt)
	}
}

func TestLeaveRequest_Reject_RequiresReason(t *testing.T) {
	t.Parallel()
	req := LeaveRequest{Status: LeaveRequestStatusPending}

	err := req.Reject("approver-1", "", time.Now())

	assert.ErrorIs(t, err, ErrRejectionReasonRequired)
	assert.Equal(t, LeaveRequestStatusPending, req.Status)
}

func TestLeaveRequest_Reject_Pending(t *testing.T) {
	t.Parallel()
	req := LeaveRequest{Status: LeaveRequestStatusPending}

	err := req.Reject("approver-1", "insufficient coverage", time.Now())

	require.NoError(t, err)
	assert.Equal(t, LeaveRequestStatusRejected, req.Status)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, "insufficient coverage", *req.RejectionReason)
	assert.Nil(t, req.ApprovedAt, "rejection must not stamp approved_at")
}

func TestLeaveRequest_Reject_Twice_SecondIsNoOp(t *testing.T) {
	t.Parallel()
	req := LeaveRequest{Status: LeaveRequestStatusPending}

	require.NoError(t, req.Reject("a", "reason one", time.Now()))
	err := req.Reject("a", "reason two", time.Now())

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, "reason one", *req.RejectionReason)
}

func TestLeaveRequest_Cancel(t *testing.T) {
	t.Parallel()
	now := date(2024, time.June, 10)

	tests := []struct {
		name      string
		status    LeaveRequestStatus
		startDate time.Time
		wantErr   bool
	}{
		{"pending is cancellable", LeaveRequestStatusPending, date(2024, time.June, 1), false},
		{"approved future leave is cancellable", LeaveRequestStatusApproved, date(2024, time.June, 20), false},
		{"approved started leave is not", LeaveRequestStatusApproved, date(2024, time.June, 1), true},
		{"rejected is not", LeaveRequestStatusRejected, date(2024, time.June, 20), true},
		{"cancelled is not", LeaveRequestStatusCancelled, date(2024, time.June, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LeaveRequest{Status: tt.status, StartDate: tt.startDate}
			err := req.Cancel(now)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotCancellable)
				assert.Equal(t, tt.status, req.Status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, LeaveRequestStatusCancelled, req.Status)
				require.NotNil(t, req.CancelledAt)
			}
		})
	}
}

func TestWorkingDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		halfDay bool
		want    float64
	}{
		// 2024-06-03 is a Monday
		{"full work week", date(2024, time.June, 3), date(2024, time.June, 7), false, 5},
		{"week including weekend", date(2024, time.June, 3), date(2024, time.June, 9), false, 5},
		{"single weekday", date(2024, time.June, 5), date(2024, time.June, 5), false, 1},
		{"weekend only", date(2024, time.June, 8), date(2024, time.June, 9), false, 0},
		{"half day single", date(2024, time.June, 5), date(2024, time.June, 5), true, 0.5},
		{"half day over a range stays 0.5", date(2024, time.June, 3), date(2024, time.June, 7), true, 0.5},
		{"two full weeks", date(2024, time.June, 3), date(2024, time.June, 14), false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDays(tt.start, tt.end, tt.halfDay))
		})
	}
}

func TestLeaveType_ValidateRequest(t *testing.T) {
	t.Parallel()
	now := date(2024, time.June, 3)
	minNotice := 7
	maxConsecutive := 5

	lt := LeaveType{
		Name:               "Annual Leave",
		DaysPerYear:        20,
		IsActive:           true,
		MinNoticeDays:      &minNotice,
		MaxConsecutiveDays: &maxConsecutive,
	}

	t.Run("valid request passes", func(t *testing.T) {
		violations := lt.ValidateRequest(date(2024, time.June, 17), date(2024, time.June, 21), now)
		assert.Empty(t, violations)
	})

	t.Run("short notice and long range collect both violations", func(t *testing.T) {
		violations := lt.ValidateRequest(date(2024, time.June, 4), date(2024, time.June, 14), now)
		assert.Len(t, violations, 2)
	})

	t.Run("inactive type is a violation", func(t *testing.T) {
		inactive := lt
		inactive.IsActive = false
		violations := inactive.ValidateRequest(date(2024, time.June, 17), date(2024, time.June, 18), now)
		assert.NotEmpty(t, violations)
	})
}
