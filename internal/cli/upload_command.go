package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/clients"
	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
)

const barWidth = 30

func (con *console) uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "upload a file with a progress bar",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "image, video, document or receipt", Required: true},
		},
		Action: func(c *cli.Context) error {
			kind := enums.UploadKind(c.String("kind"))
			if !kind.Valid() {
				return cli.Exit(fmt.Sprintf("unknown upload kind %q", kind), 2)
			}
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing file", 2)
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			bar := newProgressBar(c.App.Writer)
			events := con.clients.Uploads.Upload(c.Context, clients.UploadFile{
				Name:    filepath.Base(path),
				Size:    info.Size(),
				Content: f,
			}, kind)

			for ev := range events {
				switch {
				case ev.Progress != nil:
					bar.Update(*ev.Progress)
				case ev.Completed != nil:
					bar.Done()
					fmt.Fprintf(c.App.Writer, "Uploaded %s (%s)\n%s\n",
						orDash(ev.Completed.FileName), helpers.FormatBytes(ev.Completed.FileSize), ev.Completed.URL)
					return nil
				case ev.Err != nil:
					bar.Done()
					return fmt.Errorf("upload failed: %w", ev.Err)
				}
			}
			return errors.New("upload ended without a result")
		},
	}
}

// progressBar redraws one line on a terminal and prints one line per
// percent change otherwise.
type progressBar struct {
	w       io.Writer
	live    bool
	last    int
	started bool
}

func newProgressBar(w io.Writer) *progressBar {
	live := false
	if f, ok := w.(*os.File); ok {
		live = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &progressBar{w: w, live: live}
}

func (b *progressBar) Update(p models.UploadProgress) {
	if b.started && p.Percent == b.last {
		return
	}
	b.started = true
	b.last = p.Percent

	filled := helpers.ClampPercent(p.Percent) * barWidth / 100
	line := fmt.Sprintf("[%s%s] %3d%%  %s / %s",
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled),
		p.Percent, helpers.FormatBytes(p.BytesLoaded), helpers.FormatBytes(p.BytesTotal))

	if b.live {
		fmt.Fprintf(b.w, "\r%s", line)
		return
	}
	fmt.Fprintln(b.w, line)
}

func (b *progressBar) Done() {
	if b.live && b.started {
		fmt.Fprintln(b.w)
	}
}
