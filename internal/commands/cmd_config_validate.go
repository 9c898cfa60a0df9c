package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shelf/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate the configuration file",
				UsageText:   "shelf config validate [--json]",
				Description: "Checks themes, sort fields, ignore globs, and the library directory.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output result as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationResult struct {
	Valid  bool             `json:"valid"`
	Errors []validationItem `json:"errors,omitempty"`
}

type validationItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	err := cmd.flags.Config.ValidateDeep()

	if cmd.jsonOutput {
		result := validationResult{Valid: err == nil}
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Errors = append(result.Errors, validationItem{
					Field:   fe.Field,
					Message: fe.Err.Error(),
				})
			}
		} else if err != nil {
			result.Errors = append(result.Errors, validationItem{Message: err.Error()})
		}
		return iojson.Write(out, result)
	}

	if err != nil {
		fmt.Fprintf(out, "Configuration is invalid:\n%s\n", err.Error())
		return fmt.Errorf("config validation failed")
	}

	fmt.Fprintln(out, "Configuration is valid")
	return nil
}
