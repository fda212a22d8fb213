package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/acgh213/peoplefinder/internal/search"
	"github.com/acgh213/peoplefinder/internal/termui"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "Print one profile",
		ArgsUsage: "USERNAME",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: peoplefinder user USERNAME", 2)
			}
			_, _, client, err := setup(c)
			if err != nil {
				return err
			}

			ctrl := search.NewController(client)
			err = ctrl.SelectUser(ctx, c.Args().First())
			fmt.Fprint(os.Stdout, termui.Render(ctrl.View()))
			if err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
