package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRequestDaysConsumed(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC) }

	cases := []struct {
		name   string
		req    LeaveRequest
		days   int
		counts int
	}{
		{"single approved day", LeaveRequest{StartDate: day(3), EndDate: day(3), Status: LeaveRequestStatusApproved}, 1, 1},
		{"approved week", LeaveRequest{StartDate: day(1), EndDate: day(7), Status: LeaveRequestStatusApproved}, 7, 7},
		{"pending counts nothing", LeaveRequest{StartDate: day(1), EndDate: day(2), Status: LeaveRequestStatusPending}, 2, 0},
		{"rejected counts nothing", LeaveRequest{StartDate: day(1), EndDate: day(2), Status: LeaveRequestStatusRejected}, 2, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.days, c.req.Days())
			assert.Equal(t, c.counts, c.req.DaysConsumed())
		})
	}
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	req := CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2024-07-05", EndDate: "2024-07-04", Reason: "flu"}
	err := req.Validate()
	assert.Error(t, err)

	req.EndDate = "2024-07-06"
	assert.NoError(t, req.Validate())
	start, end := req.Period()
	assert.Equal(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC), end)
}

func TestDecideLeaveRequestValidate(t *testing.T) {
	req := DecideLeaveRequestRequest{ID: "lr-1", Status: "pending"}
	assert.Error(t, req.Validate())

	req.Status = "approved"
	assert.NoError(t, req.Validate())
}
