package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sitecrew/workforce-backend/internal/domain/report"
)

func newTable(cmd *cobra.Command) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	return tw
}

func hours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

func renderDailySummary(cmd *cobra.Command, s report.DailySummary) {
	tw := newTable(cmd)
	tw.SetTitle(fmt.Sprintf("Attendance %s", s.Date))
	tw.AppendHeader(table.Row{"Employee", "Check in", "Check out", "Break (min)", "Hours"})
	for _, r := range s.Records {
		worked := "-"
		if r.HoursWorked != nil {
			worked = hours(*r.HoursWorked)
		}
		tw.AppendRow(table.Row{r.EmployeeID, r.CheckIn, deref(r.CheckOut, "working"), r.BreakMinutes, worked})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d present", s.TotalEmployees),
		"",
		fmt.Sprintf("%d out / %d working", s.CheckedOut, s.StillWorking),
		"avg " + hours(s.AverageHoursPerEmployee),
		hours(s.TotalHoursWorked),
	})
	tw.Render()
}

func renderRangeSummary(cmd *cobra.Command, s report.RangeSummary) {
	tw := newTable(cmd)
	tw.SetTitle(fmt.Sprintf("Attendance %s to %s", s.Period.StartDate, s.Period.EndDate))
	tw.AppendHeader(table.Row{"Date", "Present", "Checked out", "Hours", "Avg hours"})
	for _, d := range s.DailyBreakdown {
		tw.AppendRow(table.Row{d.Date, d.EmployeesPresent, d.EmployeesCheckedOut, hours(d.TotalHoursWorked), hours(d.AverageHoursPerEmployee)})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d records", s.Summary.TotalAttendanceRecords),
		fmt.Sprintf("%d employees", s.Summary.UniqueEmployees),
		"avg/day " + hours(s.Summary.AverageDailyAttendance),
		hours(s.Summary.TotalHoursWorked),
		"",
	})
	tw.Render()
}

func renderLeaveSummary(cmd *cobra.Command, s report.LeaveSummary) {
	tw := newTable(cmd)
	tw.SetTitle(fmt.Sprintf("Leave %s to %s", s.Period.StartDate, s.Period.EndDate))
	tw.AppendHeader(table.Row{"Employee", "Type", "Start", "End", "Days", "Status"})
	for _, r := range s.Requests {
		tw.AppendRow(table.Row{r.EmployeeID, r.LeaveType, r.StartDate, r.EndDate, r.TotalDays, r.Status})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d requests", s.Summary.TotalRequests),
		breakdown(s.Summary.LeaveTypeBreakdown),
		"", "",
		fmt.Sprintf("%d approved", s.Summary.ApprovedLeaveDays),
		breakdown(s.Summary.StatusBreakdown),
	})
	tw.Render()
}

func renderTeamPerformance(cmd *cobra.Command, p report.TeamPerformanceReport) {
	tw := newTable(cmd)
	tw.SetTitle(fmt.Sprintf("Teams %s to %s", p.Period.StartDate, p.Period.EndDate))
	tw.AppendHeader(table.Row{"Team", "Site", "Member", "Days", "Hours", "Leave days"})
	for _, t := range p.Teams {
		for _, m := range t.Members {
			tw.AppendRow(table.Row{t.TeamName, t.SiteLocation, m.FullName, m.AttendanceDays, hours(m.HoursWorked), m.LeaveDays})
		}
		tw.AppendRow(table.Row{
			t.TeamName, t.SiteLocation,
			fmt.Sprintf("%d members", t.MemberCount),
			t.TotalAttendanceDays, hours(t.TotalHoursWorked), t.TotalLeaveDays,
		})
		tw.AppendSeparator()
	}
	tw.Render()
}

// breakdown renders a tally as "k=v" pairs in key order.
func breakdown(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, m[k])
	}
	return out
}
