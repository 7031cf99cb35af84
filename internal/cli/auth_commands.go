package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/services"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

func (con *console) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and store the auth token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", EnvVars: []string{"SMARTED_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			user, err := con.session.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "Signed in as %s (%s)\n", user.FullName(), user.Role.Label())
			return nil
		},
	}
}

// logoutCommand always exits 0: a failed backend call still clears the
// local session.
func (con *console) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out and forget the stored token",
		Action: func(c *cli.Context) error {
			result, err := con.session.Logout(c.Context)
			if err != nil {
				log := logger.ForComponent("cli")
				log.Warn().Err(err).Msg("Logout skipped")
				return nil
			}
			if result.State == services.StateForcedSuccess {
				fmt.Fprintln(c.App.Writer, "Backend logout failed, local session cleared")
			}
			return nil
		},
	}
}

func (con *console) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in account",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "remote", Usage: "also fetch the profile from the backend"},
		},
		Action: func(c *cli.Context) error {
			session, err := con.session.CurrentSession()
			if errors.Is(err, apperrors.ErrTokenNotFound) {
				return errors.New("not signed in, run: smarted login")
			}
			if err != nil {
				return err
			}

			t := newTable(c.App.Writer)
			row(t, "User", session.UserID)
			row(t, "Email", session.Email)
			row(t, "Role", session.Role.Label())
			expiry := helpers.FormatDateTime(&session.ExpiresAt)
			if session.Expired {
				expiry += " (expired)"
			}
			row(t, "Expires", expiry)

			if c.Bool("remote") {
				profile, err := con.clients.Users.Profile(c.Context)
				if err != nil {
					return err
				}
				row(t, "Name", profile.FullName())
				row(t, "Last login", helpers.FormatDateTime(profile.LastLoginAt))
			}
			return t.Flush()
		},
	}
}
