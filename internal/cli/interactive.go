package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/odysseus0/rssfeed/internal/store"
)

const (
	promptAddSite  = "\nDo you want to add new news site? (y/n): "
	promptEnterURL = "Enter the RSS feed URL: "
	promptViewAll  = "Do you want to view saved news sites? (y/n): "
)

// Driver runs the add/view prompt loop against an App. Input is read one
// line at a time; end of input ends the session.
type Driver struct {
	app *App
	in  *bufio.Scanner
	out io.Writer
}

func NewDriver(app *App, in io.Reader, out io.Writer) *Driver {
	return &Driver{app: app, in: bufio.NewScanner(in), out: out}
}

func (d *Driver) Run(ctx context.Context) error {
	for {
		choice, ok := d.prompt(promptAddSite)
		if !ok {
			fmt.Fprintln(d.out)
			return nil
		}
		switch {
		case isYes(choice):
			if !d.addSite() {
				fmt.Fprintln(d.out)
				return nil
			}
		case isNo(choice):
			answer, ok := d.prompt(promptViewAll)
			if ok && isYes(answer) {
				d.app.Display(ctx, d.out, d.app.cfg.OutputFile)
			}
			return nil
		default:
			fmt.Fprintln(d.out, "Please enter 'y' or 'n'")
		}
	}
}

// addSite returns false when input ended before a URL was read.
func (d *Driver) addSite() bool {
	raw, ok := d.prompt(promptEnterURL)
	if !ok {
		return false
	}
	url, err := d.app.AddSite(raw)
	switch {
	case err == nil:
		fmt.Fprintf(d.out, "✓ Added: %s\n", url)
	case errors.Is(err, store.ErrInvalidInput) && url == "":
		fmt.Fprintln(d.out, "URL cannot be empty!")
	case errors.Is(err, store.ErrDuplicate):
		fmt.Fprintln(d.out, "This URL already exists!")
	default:
		fmt.Fprintf(d.out, "Error occurred: %v\n", err)
	}
	return true
}

func (d *Driver) prompt(text string) (string, bool) {
	fmt.Fprint(d.out, text)
	if !d.in.Scan() {
		return "", false
	}
	return d.in.Text(), true
}
