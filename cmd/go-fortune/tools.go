package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
)

const (
	daysPerRow   = 7
	headerFormat = "%04d-%02d %s: %d days"
)

// newDaysCmd prints the day options the form would offer for a year and month.
func newDaysCmd(clock calendar.Clock) *cobra.Command {
	var year, month int
	var lunar bool

	cmd := &cobra.Command{
		Use:   "days",
		Short: config.CmdShortDays,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := calendar.NewOptionBuilder(clock)
			sel := calendar.DateSelection{Year: year, Month: month}
			if lunar {
				sel.Calendar = calendar.Lunar
			}
			sel = b.Normalize(sel)
			renderDays(cmd.OutOrStdout(), sel, b.ValidDays(sel))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	cmd.Flags().IntVar(&month, config.FlagMonth, config.DefaultMonth, config.FlagDescMonth)
	cmd.Flags().BoolVar(&lunar, config.FlagLunar, false, config.FlagDescLunar)
	return cmd
}

// renderDays writes a header and the days as a calendar-like grid.
func renderDays(out io.Writer, sel calendar.DateSelection, days []int) {
	r := lipgloss.NewRenderer(out)
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color(config.QRColorDark))
	cell := r.NewStyle().Width(4).Align(lipgloss.Right)

	var rows []string
	var row []string
	for _, d := range days {
		row = append(row, cell.Render(fmt.Sprint(d)))
		if len(row) == daysPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	fmt.Fprintln(out, header.Render(fmt.Sprintf(headerFormat, sel.Year, sel.Month, sel.Calendar, len(days))))
	fmt.Fprintln(out, strings.Join(rows, config.LineSeparator))
}

// newFormatCmd formats prediction text from a file, or stdin when no file is given.
func newFormatCmd() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: config.CmdShortFormat,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrReadInput, err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			data, err := io.ReadAll(io.LimitReader(in, config.MaxHTTPResponseSize))
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}

			c := content.Format(string(data))
			if asHTML {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), content.RenderHTML(c))
				return err
			}
			renderContent(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, config.FlagHTML, false, config.FlagDescHTML)
	return cmd
}

// renderContent writes paragraphs as-is and list items behind a colored bullet.
func renderContent(out io.Writer, c content.Content) {
	r := lipgloss.NewRenderer(out)
	bullet := r.NewStyle().Foreground(lipgloss.Color(config.QRColorDark)).Render(strings.TrimSpace(config.BulletMarker))

	blocks := make([]string, 0, len(c))
	for _, b := range c {
		if b.Kind != content.List {
			blocks = append(blocks, b.Text)
			continue
		}
		items := make([]string, len(b.Items))
		for i, item := range b.Items {
			items[i] = "  " + bullet + " " + item
		}
		blocks = append(blocks, strings.Join(items, config.LineSeparator))
	}
	fmt.Fprintln(out, strings.Join(blocks, config.BlockSeparator))
}
