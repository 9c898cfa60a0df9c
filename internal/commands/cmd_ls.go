package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/shelf/internal/core/item"
	"github.com/colonyops/shelf/internal/core/sorting"
	"github.com/colonyops/shelf/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	sortField  string
	descending bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List folders and documents in the library",
		UsageText: "shelf ls [--json] [--sort field] [--desc] [folder]",
		Description: `Displays a table of the folders and documents under the given
folder path (the library root when omitted). Folder paths use names
separated by slashes, e.g. "Books/Fiction".

Use --json for machine-readable output as JSON lines.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort field (modified, opened, created, size, pages, alpha)",
				Value:       string(sorting.FieldModified),
				Destination: &cmd.sortField,
			},
			&cli.BoolFlag{
				Name:        "desc",
				Usage:       "reverse the sort direction",
				Destination: &cmd.descending,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	field := sorting.Field(cmd.sortField)
	if !field.IsValid() {
		return fmt.Errorf("unknown sort field %q", cmd.sortField)
	}
	folderID, err := cmd.resolveFolder(c.Args().First())
	if err != nil {
		return err
	}

	folders, documents := cmd.flags.Library.Children(folderID)
	folders = sorting.Folders(folders, field, cmd.descending)
	documents = sorting.Documents(documents, field, cmd.descending)

	if len(folders) == 0 && len(documents) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "Empty folder\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, f := range folders {
			if err := iojson.WriteLine(out, folderInfo(f)); err != nil {
				return fmt.Errorf("encode folder: %w", err)
			}
		}
		for _, d := range documents {
			if err := iojson.WriteLine(out, documentInfo(d)); err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
		}
		return nil
	}

	nameWidth := maxNameWidth()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tNAME\tITEMS\tSIZE\tMODIFIED")

	for _, f := range folders {
		_, _ = fmt.Fprintf(w, "folder\t%s\t%d\t%s\t%s\n",
			truncate(f.Name, nameWidth), f.ItemCount, humanize.Bytes(uint64(f.TotalSize)), shortDate(f.Timestamps.Modified))
	}
	for _, d := range documents {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d pages\t%s\t%s\n",
			d.Kind, truncate(d.Name, nameWidth), d.PageCount, humanize.Bytes(uint64(d.FileSize)), shortDate(d.Timestamps.Modified))
	}

	_ = w.Flush()

	if errs := cmd.flags.Library.Errors(); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d item(s) failed to process; see errors.json in the library\n", len(errs))
	}

	return nil
}

// resolveFolder walks a slash-separated path of folder names from the root.
func (cmd *LsCmd) resolveFolder(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	current := ""
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		folders, _ := cmd.flags.Library.Children(current)
		found := false
		for _, f := range folders {
			if f.Name == name {
				current = f.ID
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("folder %q not found", path)
		}
	}

	return current, nil
}

// maxNameWidth caps the NAME column so long titles don't wrap the table.
func maxNameWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 80 {
		return w / 2
	}
	return 40
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func shortDate(raw string) string {
	if len(raw) >= 10 {
		return raw[:10]
	}
	if raw == "" {
		return "-"
	}
	return raw
}

// entryInfo is the JSON output format for shelf ls --json.
type entryInfo struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	Locator  string `json:"locator,omitempty"`
	Items    int    `json:"items,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	Size     int64  `json:"size"`
	Modified string `json:"modified,omitempty"`
	Opened   string `json:"opened,omitempty"`
}

func folderInfo(f item.Folder) entryInfo {
	return entryInfo{
		Type:     "folder",
		ID:       f.ID,
		Name:     f.Name,
		Items:    f.ItemCount,
		Size:     f.TotalSize,
		Modified: f.Timestamps.Modified,
	}
}

func documentInfo(d item.Document) entryInfo {
	return entryInfo{
		Type:     "document",
		ID:       d.ID,
		Name:     d.Name,
		Kind:     string(d.Kind),
		Locator:  d.Locator,
		Pages:    d.PageCount,
		Size:     d.FileSize,
		Modified: d.Timestamps.Modified,
		Opened:   d.Timestamps.Opened,
	}
}
