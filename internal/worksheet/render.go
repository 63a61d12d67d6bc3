package worksheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// RenderMarkdown lays the sheet out as a markdown document: a problem table
// with one column per row of the sheet, followed by an answer key.
func RenderMarkdown(sheet *Sheet) []byte {
	var buf bytes.Buffer

	title := sheet.Title
	if title == "" {
		title = "Worksheet"
	}
	fmt.Fprintf(&buf, "# %s\n\n", escape(title))
	fmt.Fprintf(&buf, "Formula: %s | Digits: %d | Operations: %d\n\n",
		soroban.Canonical(sheet.Config.FormulaType),
		sheet.Config.DigitCount,
		sheet.Config.OperationCount)

	if len(sheet.Rows) == 0 {
		buf.WriteString("_No problems._\n")
		return buf.Bytes()
	}

	header := make([]string, len(sheet.Rows))
	align := make([]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		header[i] = strconv.Itoa(row.Index + 1)
		align[i] = "---:"
	}
	writeTableRow(&buf, header)
	writeTableRow(&buf, align)

	starts := make([]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		starts[i] = strconv.Itoa(row.Problem.StartValue)
	}
	writeTableRow(&buf, starts)

	for op := 0; op < sheet.Config.OperationCount; op++ {
		cells := make([]string, len(sheet.Rows))
		for i, row := range sheet.Rows {
			if op < len(row.Problem.Sequence) {
				cells[i] = formatOperand(row.Problem.Sequence[op])
			}
		}
		writeTableRow(&buf, cells)
	}

	blanks := make([]string, len(sheet.Rows))
	for i := range blanks {
		blanks[i] = `\_\_\_\_`
	}
	writeTableRow(&buf, blanks)

	buf.WriteString("\n## Answer key\n\n")
	for _, row := range sheet.Rows {
		fmt.Fprintf(&buf, "%d. %d\n", row.Index+1, row.Problem.FinalAnswer)
	}

	if summary, err := Summarize(sheet); err == nil {
		fmt.Fprintf(&buf, "\nTechniques: %s\n", TechniqueLine(summary))
	}

	return buf.Bytes()
}

// RenderHTML renders the sheet as a complete printable HTML page.
func RenderHTML(sheet *Sheet) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: sheet.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(RenderMarkdown(sheet), p, renderer)
}

// TechniqueLine formats technique counts in a fixed order, e.g.
// "no-formula 12, small-friend 3, big-friend 0".
func TechniqueLine(s Summary) string {
	parts := make([]string, 0, len(techniqueOrder))
	for _, class := range techniqueOrder {
		parts = append(parts, fmt.Sprintf("%s %d", class, s.Techniques[class.String()]))
	}
	return strings.Join(parts, ", ")
}

func formatOperand(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func writeTableRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, c := range cells {
		buf.WriteString(" ")
		buf.WriteString(c)
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
