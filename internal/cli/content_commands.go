package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
)

func lessonFields() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "lecture", Usage: "lecture id"},
		&cli.StringFlag{Name: "title", Usage: "lesson title"},
		&cli.StringFlag{Name: "description", Usage: "lesson description"},
		&cli.StringFlag{Name: "type", Usage: "video, document or quiz"},
		&cli.StringFlag{Name: "video-url", Usage: "video URL"},
		&cli.StringFlag{Name: "document-url", Usage: "document URL"},
		&cli.IntFlag{Name: "duration", Usage: "duration in seconds"},
		&cli.IntFlag{Name: "order", Usage: "position inside the lecture"},
		&cli.BoolFlag{Name: "free", Usage: "free lesson"},
		&cli.Float64Flag{Name: "price", Usage: "price when not free"},
	}
}

func (con *console) lessonsCommand() *cli.Command {
	return &cli.Command{
		Name:  "lessons",
		Usage: "list and edit lessons",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list lessons",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "lecture", Usage: "only lessons of this lecture"},
					&cli.StringFlag{Name: "type", Usage: "video, document or quiz"},
					&cli.BoolFlag{Name: "free", Usage: "only free (or, with --free=false, paid) lessons"},
				),
				Action: func(c *cli.Context) error {
					lessons, page, err := con.clients.Lessons.List(c.Context, dto.LessonFilters{
						ListParams: listParams(c),
						LectureID:  c.String("lecture"),
						Type:       enums.LessonType(c.String("type")),
						IsFree:     optionalBool(c, "free"),
					})
					if err != nil {
						return err
					}
					printLessons(c, lessons)
					printPagination(c.App.Writer, page)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a lesson",
				Flags: lessonFields(),
				Action: func(c *cli.Context) error {
					lesson, err := con.clients.Lessons.Create(c.Context, dto.CreateLessonRequest{
						LectureID:   c.String("lecture"),
						Title:       c.String("title"),
						Description: c.String("description"),
						Type:        enums.LessonType(c.String("type")),
						VideoURL:    c.String("video-url"),
						DocumentURL: c.String("document-url"),
						Duration:    c.Int("duration"),
						Order:       c.Int("order"),
						IsFree:      c.Bool("free"),
						Price:       c.Float64("price"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created lesson %s\n", lesson.ID)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "change the given fields of a lesson",
				ArgsUsage: "<lesson-id>",
				Flags:     lessonFields(),
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "lesson")
					if err != nil {
						return err
					}
					req := dto.UpdateLessonRequest{
						LectureID:   optionalString(c, "lecture"),
						Title:       optionalString(c, "title"),
						Description: optionalString(c, "description"),
						VideoURL:    optionalString(c, "video-url"),
						DocumentURL: optionalString(c, "document-url"),
						Duration:    optionalInt(c, "duration"),
						Order:       optionalInt(c, "order"),
						IsFree:      optionalBool(c, "free"),
						Price:       optionalFloat(c, "price"),
					}
					if c.IsSet("type") {
						req.Type = dto.Ptr(enums.LessonType(c.String("type")))
					}
					lesson, err := con.clients.Lessons.Update(c.Context, id, req)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated lesson %s\n", lesson.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a lesson",
				ArgsUsage: "<lesson-id>",
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "lesson")
					if err != nil {
						return err
					}
					if err := con.clients.Lessons.Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Deleted lesson %s\n", id)
					return nil
				},
			},
		},
	}
}

func printLessons(c *cli.Context, lessons []models.Lesson) {
	t := newTable(c.App.Writer)
	row(t, "ID", "ORDER", "TITLE", "TYPE", "DURATION", "PRICE")
	for _, l := range lessons {
		price := "free"
		if !l.IsFree {
			price = helpers.FormatAmount(l.Price, "")
		}
		row(t, l.ID, l.Order, l.Title, l.Type, helpers.FormatSeconds(l.Duration), price)
	}
	t.Flush()
}

func unitFields() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "subject", Usage: "subject id"},
		&cli.StringFlag{Name: "name", Usage: "unit name"},
		&cli.StringFlag{Name: "description", Usage: "unit description"},
		&cli.IntFlag{Name: "order", Usage: "position inside the subject"},
		&cli.BoolFlag{Name: "active", Usage: "visible to students"},
	}
}

func (con *console) unitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "list and edit units",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list units",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "subject", Usage: "only units of this subject"},
					&cli.BoolFlag{Name: "active", Usage: "filter on the active flag"},
				),
				Action: func(c *cli.Context) error {
					units, page, err := con.clients.Units.List(c.Context, dto.UnitFilters{
						ListParams: listParams(c),
						SubjectID:  c.String("subject"),
						IsActive:   optionalBool(c, "active"),
					})
					if err != nil {
						return err
					}
					t := newTable(c.App.Writer)
					row(t, "ID", "ORDER", "NAME", "SUBJECT", "ACTIVE")
					for _, u := range units {
						row(t, u.ID, u.Order, u.Name, u.SubjectID, yesNo(u.IsActive))
					}
					t.Flush()
					printPagination(c.App.Writer, page)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a unit",
				Flags: unitFields(),
				Action: func(c *cli.Context) error {
					unit, err := con.clients.Units.Create(c.Context, dto.CreateUnitRequest{
						SubjectID:   c.String("subject"),
						Name:        c.String("name"),
						Description: c.String("description"),
						Order:       c.Int("order"),
						IsActive:    optionalBool(c, "active"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created unit %s\n", unit.ID)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "change the given fields of a unit",
				ArgsUsage: "<unit-id>",
				Flags:     unitFields(),
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "unit")
					if err != nil {
						return err
					}
					unit, err := con.clients.Units.Update(c.Context, id, dto.UpdateUnitRequest{
						SubjectID:   optionalString(c, "subject"),
						Name:        optionalString(c, "name"),
						Description: optionalString(c, "description"),
						Order:       optionalInt(c, "order"),
						IsActive:    optionalBool(c, "active"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Updated unit %s\n", unit.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a unit",
				ArgsUsage: "<unit-id>",
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "unit")
					if err != nil {
						return err
					}
					if err := con.clients.Units.Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Deleted unit %s\n", id)
					return nil
				},
			},
		},
	}
}

func (con *console) yearsCommand() *cli.Command {
	return &cli.Command{
		Name:  "years",
		Usage: "academic years",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list academic years",
				Flags: append(listFlags(),
					&cli.BoolFlag{Name: "active", Usage: "only active years"},
				),
				Action: func(c *cli.Context) error {
					var (
						years []models.AcademicYear
						err   error
					)
					if c.Bool("active") {
						years, err = con.clients.AcademicYears.GetActive(c.Context)
					} else {
						years, err = con.clients.AcademicYears.GetAll(c.Context, dto.AcademicYearFilters{ListParams: listParams(c)})
					}
					if err != nil {
						return err
					}
					printYears(c, years)
					return nil
				},
			},
			{
				Name:  "current",
				Usage: "show the current academic year",
				Action: func(c *cli.Context) error {
					year, err := con.clients.AcademicYears.GetCurrent(c.Context)
					if err != nil {
						return err
					}
					printYears(c, []models.AcademicYear{*year})
					return nil
				},
			},
			{
				Name:      "student-years",
				Usage:     "list the student years of an academic year",
				ArgsUsage: "<year-id>",
				Action: func(c *cli.Context) error {
					id, err := requireID(c, "academic year")
					if err != nil {
						return err
					}
					years, err := con.clients.AcademicYears.GetStudentYears(c.Context, id)
					if err != nil {
						return err
					}
					t := newTable(c.App.Writer)
					row(t, "ID", "ORDER", "NAME", "ACTIVE")
					for _, y := range years {
						row(t, y.ID, y.Order, y.Name, yesNo(y.IsActive))
					}
					return t.Flush()
				},
			},
		},
	}
}

func printYears(c *cli.Context, years []models.AcademicYear) {
	t := newTable(c.App.Writer)
	row(t, "ID", "NAME", "START", "END", "CURRENT", "ACTIVE")
	for _, y := range years {
		row(t, y.ID, y.Name, helpers.FormatDate(y.StartDate), helpers.FormatDate(y.EndDate), yesNo(y.IsCurrent), yesNo(y.IsActive))
	}
	t.Flush()
}
