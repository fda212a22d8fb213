package termui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/acgh213/peoplefinder/internal/search"
)

const browseHelp = `Commands:
  /NAME  search for NAME
  n, p   next or previous page
  N      jump to page N
  o K    open the K-th result on this page
  b      back to the results
  c      clear
  q      quit
`

// Browser is a line-oriented interactive front end over a controller.
type Browser struct {
	ctrl *search.Controller
	in   *bufio.Scanner
	out  io.Writer
}

func NewBrowser(ctrl *search.Controller, in io.Reader, out io.Writer) *Browser {
	return &Browser{ctrl: ctrl, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until q, end of input or ctx is done. A non-empty
// initial query is searched before the first prompt.
func (b *Browser) Run(ctx context.Context, initial string) error {
	if strings.TrimSpace(initial) != "" {
		b.Exec(ctx, "/"+initial)
	} else {
		fmt.Fprint(b.out, browseHelp)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(b.out, "> ")
		if !b.in.Scan() {
			fmt.Fprintln(b.out)
			return b.in.Err()
		}
		if quit := b.Exec(ctx, b.in.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command and prints the resulting view. It reports whether
// the command asked to quit.
func (b *Browser) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return false
	case line == "q" || line == "quit":
		return true
	case line == "?" || line == "help":
		fmt.Fprint(b.out, browseHelp)
		return false
	case strings.HasPrefix(line, "/"):
		text := line[1:]
		if strings.TrimSpace(text) == "" {
			b.ctrl.SetQuery(text)
			fmt.Fprintln(b.out, metaStyle.Render("Type /NAME to search."))
			return false
		}
		if err := b.ctrl.Search(ctx, text); errors.Is(err, search.ErrSuperseded) {
			return false
		}
	case line == "n":
		b.ctrl.NextPage()
	case line == "p":
		b.ctrl.PrevPage()
	case line == "b":
		b.ctrl.Back()
	case line == "c":
		b.ctrl.Clear()
		fmt.Fprintln(b.out, metaStyle.Render("Cleared."))
		return false
	case strings.HasPrefix(line, "o "):
		if !b.open(ctx, strings.TrimSpace(line[2:])) {
			return false
		}
	default:
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(b.out, "Unknown command %q\n%s", line, browseHelp)
			return false
		}
		b.ctrl.SetPage(n)
	}

	fmt.Fprint(b.out, Render(b.ctrl.View()))
	return false
}

// open selects the k-th visible result, counted from 1.
func (b *Browser) open(ctx context.Context, arg string) bool {
	k, err := strconv.Atoi(arg)
	v := b.ctrl.View()
	if err != nil || k < 1 || k > len(v.Visible) || v.Selected != nil {
		fmt.Fprintf(b.out, "No result %q on this page\n", arg)
		return false
	}
	if err := b.ctrl.SelectUser(ctx, v.Visible[k-1].Username); errors.Is(err, search.ErrSuperseded) {
		return false
	}
	return true
}
