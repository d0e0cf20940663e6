package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapelayer/internal/shapefile"
)

var fieldsColumnHeaders = []string{"name", "type", "stored", "length", "decimals"}

var fieldsCmd = &cobra.Command{
	Use:   "fields <file.dbf>",
	Short: "list the columns of an attribute table",
	Long: `
Prints the field descriptors of an attribute table: the column name,
the type it decodes to, the stored dBASE type character, and the
declared cell width. Accepts the .shp half of a pair and finds the
sibling table itself.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runFields,
}

// attributePath swaps in the .dbf extension when handed the geometry
// half of a pair.
func attributePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	}
	return path
}

func runFields(cmd *cobra.Command, args []string) error {
	d, err := shapefile.ReadDBFFile(attributePath(args[0]))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(fieldsColumnHeaders)
	for _, f := range d.Fields {
		table.Append([]string{
			f.Name,
			f.ColumnType().String(),
			string(f.Type),
			strconv.Itoa(f.Length),
			strconv.Itoa(f.Decimals),
		})
	}
	table.Render()
	fmt.Printf("(%d fields, %d records)\n", len(d.Fields), d.Table.RowCount())
	return nil
}
