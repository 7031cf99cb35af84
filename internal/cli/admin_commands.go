package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
)

func (con *console) usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "platform accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list users",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "role", Usage: "student, admin, teacher or support"},
					&cli.BoolFlag{Name: "active", Usage: "filter on the active flag"},
					&cli.BoolFlag{Name: "verified", Usage: "filter on the verified flag"},
				),
				Action: func(c *cli.Context) error {
					users, page, err := con.clients.Users.List(c.Context, dto.UserFilters{
						ListParams: listParams(c),
						Role:       enums.Role(c.String("role")),
						IsActive:   optionalBool(c, "active"),
						IsVerified: optionalBool(c, "verified"),
					})
					if err != nil {
						return err
					}
					t := newTable(c.App.Writer)
					row(t, "ID", "NAME", "EMAIL", "ROLE", "ACTIVE", "VERIFIED")
					for _, u := range users {
						row(t, u.ID, u.FullName(), u.Email, u.Role.Label(), yesNo(u.IsActive), yesNo(u.IsVerified))
					}
					t.Flush()
					printPagination(c.App.Writer, page)
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "account totals",
				Action: func(c *cli.Context) error {
					stats, err := con.clients.Users.Stats(c.Context)
					if err != nil {
						return err
					}
					t := newTable(c.App.Writer)
					row(t, "Total", stats.TotalUsers)
					row(t, "Active", stats.ActiveUsers)
					row(t, "Verified", stats.VerifiedUsers)
					row(t, "New this month", stats.NewThisMonth)
					roles := make([]string, 0, len(stats.UsersByRole))
					for r := range stats.UsersByRole {
						roles = append(roles, string(r))
					}
					sort.Strings(roles)
					for _, r := range roles {
						row(t, enums.Role(r).Label(), stats.UsersByRole[enums.Role(r)])
					}
					return t.Flush()
				},
			},
		},
	}
}

func (con *console) paymentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "payments",
		Usage: "student payments",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list payments",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "status", Usage: "pending, approved or rejected"},
					&cli.StringFlag{Name: "student", Usage: "student id"},
					&cli.StringFlag{Name: "subject", Usage: "subject id"},
					&cli.StringFlag{Name: "lesson", Usage: "lesson id"},
					&cli.StringFlag{Name: "from", Usage: "created on or after (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Usage: "created on or before (YYYY-MM-DD)"},
				),
				Action: func(c *cli.Context) error {
					payments, page, err := con.clients.Payments.List(c.Context, dto.PaymentFilters{
						ListParams: listParams(c),
						Status:     enums.PaymentStatus(c.String("status")),
						StudentID:  c.String("student"),
						SubjectID:  c.String("subject"),
						LessonID:   c.String("lesson"),
						DateFrom:   c.String("from"),
						DateTo:     c.String("to"),
					})
					if err != nil {
						return err
					}
					printPayments(c, payments)
					printPagination(c.App.Writer, page)
					return nil
				},
			},
		},
	}
}

func printPayments(c *cli.Context, payments []models.Payment) {
	t := newTable(c.App.Writer)
	row(t, "ID", "STUDENT", "FOR", "AMOUNT", "STATUS", "CREATED")
	for _, p := range payments {
		student := p.StudentID
		if p.Student != nil {
			student = p.Student.FullName()
		}
		target, id := p.Target()
		forLabel := "-"
		if target != models.TargetNone {
			forLabel = string(target) + " " + id
		}
		row(t, p.ID, student, forLabel, helpers.FormatAmount(p.Amount, p.Currency), p.Status.Label(), helpers.FormatDate(p.CreatedAt))
	}
	t.Flush()
}

func (con *console) codesCommand() *cli.Command {
	return &cli.Command{
		Name:  "codes",
		Usage: "activation codes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list activation codes",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "subject", Usage: "subject id"},
					&cli.StringFlag{Name: "lesson", Usage: "lesson id"},
					&cli.BoolFlag{Name: "active", Usage: "filter on the active flag"},
				),
				Action: func(c *cli.Context) error {
					codes, page, err := con.clients.ActivationCodes.List(c.Context, dto.ActivationCodeFilters{
						ListParams: listParams(c),
						SubjectID:  c.String("subject"),
						LessonID:   c.String("lesson"),
						IsActive:   optionalBool(c, "active"),
					})
					if err != nil {
						return err
					}
					printCodes(c, codes, time.Now())
					printPagination(c.App.Writer, page)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "mint an activation code for a subject or a lesson",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Usage: "code text, generated by the backend when empty"},
					&cli.StringFlag{Name: "subject", Usage: "subject id"},
					&cli.StringFlag{Name: "lesson", Usage: "lesson id"},
					&cli.IntFlag{Name: "max-uses", Usage: "number of redemptions", Value: 1},
					&cli.StringFlag{Name: "expires", Usage: "expiry date (RFC 3339)"},
				},
				Action: func(c *cli.Context) error {
					req := dto.CreateActivationCodeRequest{
						Code:      c.String("code"),
						MaxUses:   c.Int("max-uses"),
						ExpiresAt: c.String("expires"),
					}
					if s := c.String("subject"); s != "" {
						req.SubjectID = &s
					}
					if l := c.String("lesson"); l != "" {
						req.LessonID = &l
					}
					code, err := con.clients.ActivationCodes.Create(c.Context, req)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created code %s (%d uses)\n", code.Code, code.MaxUses)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete an activation code",
				ArgsUsage: "<code-id>",
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "activation code")
					if err != nil {
						return err
					}
					if err := con.clients.ActivationCodes.Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Deleted code %s\n", id)
					return nil
				},
			},
		},
	}
}

func printCodes(c *cli.Context, codes []models.ActivationCode, now time.Time) {
	t := newTable(c.App.Writer)
	row(t, "CODE", "FOR", "USES", "USAGE", "EXPIRES", "STATUS")
	for _, code := range codes {
		forLabel := "-"
		switch {
		case code.SubjectID != nil:
			forLabel = "subject " + *code.SubjectID
		case code.LessonID != nil:
			forLabel = "lesson " + *code.LessonID
		}
		status := "active"
		switch {
		case !code.IsActive:
			status = "inactive"
		case code.IsExpired(now):
			status = "expired"
		case code.IsExhausted():
			status = "used up"
		}
		row(t, code.Code, forLabel,
			fmt.Sprintf("%d/%d", code.CurrentUses, code.MaxUses),
			fmt.Sprintf("%d%%", code.UsagePercentage()),
			helpers.FormatDateTime(code.ExpiresAt), status)
	}
	t.Flush()
}

func (con *console) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "platform totals and recent activity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "period", Usage: "also show registrations per period (day, week, month)"},
		},
		Action: func(c *cli.Context) error {
			stats, err := con.clients.Analytics.Dashboard(c.Context)
			if err != nil {
				return err
			}
			t := newTable(c.App.Writer)
			row(t, "Students", stats.TotalStudents)
			row(t, "Teachers", stats.TotalTeachers)
			row(t, "Subjects", stats.TotalSubjects)
			row(t, "Lessons", stats.TotalLessons)
			row(t, "Pending payments", stats.PendingPayments)
			row(t, "Revenue", helpers.FormatAmount(stats.TotalRevenue, ""))
			t.Flush()

			if len(stats.RecentActivity) > 0 {
				fmt.Fprintln(c.App.Writer, "\nRecent activity")
				t = newTable(c.App.Writer)
				for _, a := range stats.RecentActivity {
					row(t, helpers.FormatDateTime(&a.CreatedAt), a.Type, a.Description)
				}
				t.Flush()
			}

			if period := c.String("period"); period != "" {
				analytics, err := con.clients.Analytics.Users(c.Context, period)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "\nRegistrations per %s\n", period)
				t = newTable(c.App.Writer)
				for _, p := range analytics.Registrations {
					row(t, p.Period, p.Count)
				}
				row(t, "Active today", analytics.ActiveToday)
				t.Flush()
			}
			return nil
		},
	}
}
