package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapelayer/pkg/layer"
)

var (
	recordsLimit  int
	recordsOffset int
)

var recordsCmd = &cobra.Command{
	Use:   "records <file.shp>",
	Short: "print attribute rows",
	Long: `
Imports the shapefile pair and prints its attribute rows. The column
picked as the layer's label field is marked with an asterisk.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRecords,
}

func init() {
	f := recordsCmd.Flags()
	f.IntVar(&recordsLimit, "limit", 20, "maximum rows to print, 0 for all")
	f.IntVar(&recordsOffset, "offset", 0, "rows to skip")
}

func runRecords(cmd *cobra.Command, args []string) error {
	result, err := layer.ImportWithOptions(args[0], layer.NewManager(), layer.ImportOptions{})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	l := result.Layer
	t := l.Table()
	if t == nil {
		return errors.Newf("%s has no attribute table", args[0])
	}

	headers := make([]string, 0, t.ColumnCount()+1)
	headers = append(headers, "row")
	for _, col := range t.Columns() {
		name := col.Name
		if strings.EqualFold(name, l.LabelField()) {
			name += " *"
		}
		headers = append(headers, name)
	}

	start := recordsOffset
	if start < 0 {
		start = 0
	}
	if start > t.RowCount() {
		start = t.RowCount()
	}
	end := t.RowCount()
	if recordsLimit > 0 && start+recordsLimit < end {
		end = start + recordsLimit
	}

	out := tablewriter.NewWriter(os.Stdout)
	out.SetAutoFormatHeaders(false)
	out.SetAutoWrapText(false)
	out.SetHeader(headers)
	for i := start; i < end; i++ {
		cells := make([]string, 0, t.ColumnCount()+1)
		cells = append(cells, strconv.Itoa(i))
		for j := range t.Columns() {
			cells = append(cells, t.CellString(i, j))
		}
		out.Append(cells)
	}
	out.Render()
	fmt.Printf("(%d of %d rows)\n", end-start, t.RowCount())
	return nil
}
