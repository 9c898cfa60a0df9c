package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/shelf/internal/core/styles"
	"github.com/colonyops/shelf/pkg/iojson"
)

type ThemesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewThemesCmd creates a new themes command
func NewThemesCmd(flags *Flags) *ThemesCmd {
	return &ThemesCmd{flags: flags}
}

// Register adds the themes command to the application
func (cmd *ThemesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "themes",
		Usage:     "List available color themes",
		UsageText: "shelf themes [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type themeInfo struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Primary string `json:"primary"`
}

func (cmd *ThemesCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	for _, name := range styles.Names() {
		palette, _ := styles.GetPalette(name)
		active := name == cmd.flags.Config.Theme

		if cmd.jsonOutput {
			info := themeInfo{Name: name, Active: active, Primary: palette.Primary}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode theme: %w", err)
			}
			continue
		}

		marker := " "
		if active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}

	return nil
}
