package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitecrew/workforce-backend/internal/app"
	"github.com/sitecrew/workforce-backend/internal/config"
	"github.com/sitecrew/workforce-backend/internal/domain/report"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/fixtures"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/migrate"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
	authService "github.com/sitecrew/workforce-backend/internal/service/auth"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPostgres(cmd.Context(), func(ctx context.Context, stores *app.Stores) error {
				version, err := migrate.Migrate(ctx, stores.DB)
				if err != nil {
					return err
				}
				return printVersion(cmd, version)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPostgres(cmd.Context(), func(ctx context.Context, stores *app.Stores) error {
				version, err := migrate.CurrentVersion(ctx, stores.DB)
				if err != nil {
					return err
				}
				return printVersion(cmd, version)
			})
		},
	})
	return cmd
}

func withPostgres(ctx context.Context, fn func(context.Context, *app.Stores) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Type != config.StorePostgres {
		return fmt.Errorf("migrations need the %s store, got %q", config.StorePostgres, cfg.Store.Type)
	}
	stores, err := app.NewPostgresStores(ctx, cfg.DatabaseURL(), false)
	if err != nil {
		return err
	}
	defer stores.Close()
	return fn(ctx, stores)
}

func printVersion(cmd *cobra.Command, version int) error {
	latest, err := migrate.Latest()
	if err != nil {
		return err
	}
	if viper.GetBool("json") {
		return printJSON(cmd.OutOrStdout(), map[string]int{"version": version, "latest": latest})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (latest %d)\n", version, latest)
	return nil
}

func seedCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd.Context(), func(ctx context.Context, e env) error {
				if password == "" {
					password = e.cfg.Store.SeedPassword
				}
				hash, err := authService.HashPassword(password)
				if err != nil {
					return err
				}
				seeded, err := fixtures.SeedDemoOrganization(ctx, e.stores.Users, e.stores.Teams, hash, e.clock.Today())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), seeded)
				}
				tw := newTable(cmd)
				tw.AppendHeader(table.Row{"Key", "User ID", "Assignment ID"})
				for _, key := range sortedKeys(seeded.UserIDs) {
					tw.AppendRow(table.Row{key, seeded.UserIDs[key], seeded.AssignmentIDs[key]})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password for every demo account (defaults to SEED_PASSWORD)")
	return cmd
}

func userCmd() *cobra.Command {
	usr := &cobra.Command{Use: "user", Short: "Manage accounts"}
	usr.AddCommand(userCreateCmd())
	return usr
}

func userCreateCmd() *cobra.Command {
	var req user.CreateUserRequest
	var fullName, employeeNumber, department, supervisor string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Email = strings.TrimSpace(req.Email)
			req.FullName = optional(fullName)
			req.EmployeeNumber = optional(employeeNumber)
			req.Department = optional(department)

			return withStores(cmd.Context(), func(ctx context.Context, e env) error {
				if supervisor != "" {
					id, err := resolveUserRef(ctx, e.stores.Users, supervisor)
					if err != nil {
						return err
					}
					req.SupervisorID = &id
				}
				created, err := createUser(ctx, e.stores.Users, req)
				if err != nil {
					return err
				}
				resp := user.NewUserResponse(created)
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				tw := newTable(cmd)
				tw.AppendHeader(table.Row{"ID", "Email", "Role", "Supervisor"})
				tw.AppendRow(table.Row{resp.ID, resp.Email, resp.Role, deref(resp.SupervisorID, "-")})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password, at least 8 characters")
	cmd.Flags().StringVar(&req.Role, "role", string(user.RoleLaborer), "admin, supervisor or laborer")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&employeeNumber, "employee-number", "", "payroll number")
	cmd.Flags().StringVar(&department, "department", "", "department")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "supervisor id or email")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// createUser validates req, checks the supervisor reference and stores the
// account with a bcrypt hash.
func createUser(ctx context.Context, users user.UserRepository, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	if req.SupervisorID != nil {
		sup, err := users.GetByID(ctx, *req.SupervisorID)
		if err != nil {
			return user.User{}, fmt.Errorf("%w: %w", user.ErrInvalidSupervisor, err)
		}
		if !sup.CanSupervise() || !sup.IsActive {
			return user.User{}, user.ErrInvalidSupervisor
		}
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return users.Create(ctx, user.User{
		Email:          req.Email,
		PasswordHash:   &hash,
		FullName:       req.FullName,
		EmployeeNumber: req.EmployeeNumber,
		Department:     req.Department,
		Role:           user.Role(req.Role),
		SupervisorID:   req.SupervisorID,
		IsActive:       true,
	})
}

// resolveUserRef accepts either a user id or an email.
func resolveUserRef(ctx context.Context, users user.UserRepository, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if !strings.Contains(ref, "@") {
		return ref, nil
	}
	u, err := users.GetByEmail(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return u.ID, nil
}

func reportCmd() *cobra.Command {
	rpt := &cobra.Command{Use: "report", Short: "Print role-scoped reports"}
	rpt.AddCommand(reportDailyCmd())
	rpt.AddCommand(reportAttendanceCmd())
	rpt.AddCommand(reportLeaveCmd())
	rpt.AddCommand(reportTeamCmd())
	return rpt
}

// reportFlags holds the filters shared by the report subcommands. Employee
// and supervisor accept an id or an email.
type reportFlags struct {
	from, to, date       string
	employee, supervisor string
	site, team, status   string
}

func (f *reportFlags) bindRange(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD (defaults to the start of this month)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day, YYYY-MM-DD (defaults to today)")
}

func (f *reportFlags) period(clk clock.Clock) (string, string) {
	today := clk.Today()
	from, to := f.from, f.to
	if from == "" {
		from = clock.MonthStart(today).Format(validator.DateLayout)
	}
	if to == "" {
		to = today.Format(validator.DateLayout)
	}
	return from, to
}

func (f *reportFlags) refs(ctx context.Context, users user.UserRepository) (employeeID, supervisorID *string, err error) {
	if f.employee != "" {
		id, err := resolveUserRef(ctx, users, f.employee)
		if err != nil {
			return nil, nil, err
		}
		employeeID = &id
	}
	if f.supervisor != "" {
		id, err := resolveUserRef(ctx, users, f.supervisor)
		if err != nil {
			return nil, nil, err
		}
		supervisorID = &id
	}
	return employeeID, supervisorID, nil
}

// withReports opens the store, resolves --as and hands over the report
// service.
func withReports(ctx context.Context, fn func(context.Context, env, report.ReportService, user.Requester) error) error {
	return withStores(ctx, func(ctx context.Context, e env) error {
		requester, err := actingAs(ctx, e.stores.Users)
		if err != nil {
			return err
		}
		services := app.NewServices(e.stores, e.clock, nil)
		return fn(ctx, e, services.Report, requester)
	})
}

func reportDailyCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Attendance for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReports(cmd.Context(), func(ctx context.Context, e env, svc report.ReportService, requester user.Requester) error {
				employeeID, supervisorID, err := f.refs(ctx, e.stores.Users)
				if err != nil {
					return err
				}
				date := f.date
				if date == "" {
					date = e.clock.Today().Format(validator.DateLayout)
				}
				summary, err := svc.GetDailyAttendanceSummary(ctx, requester, report.DailySummaryRequest{
					Date:         date,
					EmployeeID:   employeeID,
					SupervisorID: supervisorID,
					SiteLocation: optional(f.site),
					TeamName:     optional(f.team),
				})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), summary)
				}
				renderDailySummary(cmd, summary)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.date, "date", "", "day, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&f.employee, "employee", "", "employee id or email")
	cmd.Flags().StringVar(&f.supervisor, "supervisor", "", "supervisor id or email")
	cmd.Flags().StringVar(&f.site, "site", "", "site location")
	cmd.Flags().StringVar(&f.team, "team", "", "team name")
	return cmd
}

func reportAttendanceCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance totals and daily breakdown over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReports(cmd.Context(), func(ctx context.Context, e env, svc report.ReportService, requester user.Requester) error {
				employeeID, supervisorID, err := f.refs(ctx, e.stores.Users)
				if err != nil {
					return err
				}
				from, to := f.period(e.clock)
				summary, err := svc.GetAttendanceRangeSummary(ctx, requester, report.RangeRequest{
					StartDate:    from,
					EndDate:      to,
					EmployeeID:   employeeID,
					SupervisorID: supervisorID,
					SiteLocation: optional(f.site),
					TeamName:     optional(f.team),
				})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), summary)
				}
				renderRangeSummary(cmd, summary)
				return nil
			})
		},
	}
	f.bindRange(cmd)
	cmd.Flags().StringVar(&f.employee, "employee", "", "employee id or email")
	cmd.Flags().StringVar(&f.supervisor, "supervisor", "", "supervisor id or email")
	cmd.Flags().StringVar(&f.site, "site", "", "site location")
	cmd.Flags().StringVar(&f.team, "team", "", "team name")
	return cmd
}

func reportLeaveCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave requests overlapping a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReports(cmd.Context(), func(ctx context.Context, e env, svc report.ReportService, requester user.Requester) error {
				employeeID, supervisorID, err := f.refs(ctx, e.stores.Users)
				if err != nil {
					return err
				}
				from, to := f.period(e.clock)
				summary, err := svc.GetLeaveRangeSummary(ctx, requester, report.LeaveSummaryRequest{
					StartDate:    from,
					EndDate:      to,
					Status:       optional(f.status),
					SupervisorID: supervisorID,
					EmployeeID:   employeeID,
				})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), summary)
				}
				renderLeaveSummary(cmd, summary)
				return nil
			})
		},
	}
	f.bindRange(cmd)
	cmd.Flags().StringVar(&f.employee, "employee", "", "employee id or email")
	cmd.Flags().StringVar(&f.supervisor, "supervisor", "", "supervisor id or email")
	cmd.Flags().StringVar(&f.status, "status", "", "pending, approved or rejected")
	return cmd
}

func reportTeamCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Per-team attendance, hours and leave",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReports(cmd.Context(), func(ctx context.Context, e env, svc report.ReportService, requester user.Requester) error {
				_, supervisorID, err := f.refs(ctx, e.stores.Users)
				if err != nil {
					return err
				}
				from, to := f.period(e.clock)
				perf, err := svc.GetTeamPerformance(ctx, requester, report.TeamPerformanceRequest{
					StartDate:    from,
					EndDate:      to,
					SupervisorID: supervisorID,
					TeamName:     optional(f.team),
					SiteLocation: optional(f.site),
				})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), perf)
				}
				renderTeamPerformance(cmd, perf)
				return nil
			})
		},
	}
	f.bindRange(cmd)
	cmd.Flags().StringVar(&f.supervisor, "supervisor", "", "supervisor id or email")
	cmd.Flags().StringVar(&f.site, "site", "", "site location")
	cmd.Flags().StringVar(&f.team, "team", "", "team name")
	return cmd
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
