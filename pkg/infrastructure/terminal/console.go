package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"vendingmachine/pkg/domain/service"
)

type palette struct {
	label    *color.Color
	title    *color.Color
	banner   *color.Color
	severity map[service.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	paint := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		label:  paint(color.FgCyan),
		title:  paint(color.Bold),
		banner: paint(color.FgMagenta, color.Bold),
		severity: map[service.Severity]*color.Color{
			service.SeverityInfo:    paint(color.FgCyan),
			service.SeveritySuccess: paint(color.FgGreen),
			service.SeverityWarning: paint(color.FgYellow),
			service.SeverityError:   paint(color.FgRed),
		},
	}
}

// Console implements service.Terminal over a line-oriented reader and writer.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	palette palette
}

func NewConsole(in io.Reader, out io.Writer, colored bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, palette: newPalette(colored)}
}

// PromptLine returns io.EOF (wrapped) once the input is exhausted.
func (c *Console) PromptLine(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", c.palette.label.Sprint(label))

	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			fmt.Fprintln(c.out)
			return strings.TrimRight(line, "\r\n"), nil
		}
		fmt.Fprintln(c.out)
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) RenderTable(title string, columns []string, rows [][]string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.palette.title.Sprint(title))

	table := tablewriter.NewWriter(c.out)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func (c *Console) RenderMessage(severity service.Severity, text string) {
	if paint, ok := c.palette.severity[severity]; ok {
		text = paint.Sprint(text)
	}
	fmt.Fprintln(c.out, text)
}

func (c *Console) RenderBanner(text string) {
	border := strings.Repeat("=", len(text)+8)
	fmt.Fprintln(c.out, c.palette.banner.Sprint(border))
	fmt.Fprintln(c.out, c.palette.banner.Sprint("    "+text))
	fmt.Fprintln(c.out, c.palette.banner.Sprint(border))
}
