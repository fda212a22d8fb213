package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/acgh213/peoplefinder/internal/search"
	"github.com/acgh213/peoplefinder/internal/termui"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search people by name and print one page of results",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to print",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_, _, client, err := setup(c)
			if err != nil {
				return err
			}

			ctrl := search.NewController(client)
			err = ctrl.Search(ctx, strings.Join(c.Args().Slice(), " "))
			if err == nil {
				ctrl.SetPage(int(c.Int("page")))
			}

			fmt.Fprint(os.Stdout, termui.Render(ctrl.View()))
			switch {
			case errors.Is(err, search.ErrEmptyQuery):
				return cli.Exit("", 2)
			case err != nil:
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
