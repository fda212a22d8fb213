package main

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/acgh213/peoplefinder/internal/search"
	"github.com/acgh213/peoplefinder/internal/termui"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Search and page through results interactively",
		ArgsUsage: "[NAME]",
		Action: func(ctx context.Context, c *cli.Command) error {
			_, _, client, err := setup(c)
			if err != nil {
				return err
			}

			ctrl := search.NewController(client)
			return termui.NewBrowser(ctrl, os.Stdin, os.Stdout).Run(ctx, strings.Join(c.Args().Slice(), " "))
		},
	}
}
