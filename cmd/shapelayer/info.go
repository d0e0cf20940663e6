package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapelayer/internal/shapefile"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.shp>",
	Short: "summarize a geometry file",
	Long: `
Prints the shape type, declared bounds, size and feature count of a
geometry file, plus the shape of the attribute table when the sibling
.dbf exists. Decode warnings go to stderr.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	sf, err := shapefile.ReadSHPFile(path, shapefile.ReadOptions{})
	if err != nil {
		return err
	}

	fmt.Printf("%-11s %s\n", "file:", filepath.Base(path))
	fmt.Printf("%-11s %s\n", "size:", humanize.IBytes(uint64(fi.Size())))
	fmt.Printf("%-11s %v\n", "type:", sf.Header.ShapeType)
	b := sf.Header.Bounds
	fmt.Printf("%-11s (%g, %g) to (%g, %g)\n", "bounds:", b.MinX, b.MinY, b.MaxX, b.MaxY)
	fmt.Printf("%-11s %d\n", "features:", len(sf.Shapes))

	dbfPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	if d, err := shapefile.ReadDBFFile(dbfPath); err == nil {
		fmt.Printf("%-11s %d rows, %d fields (updated %s)\n", "attributes:",
			d.Table.RowCount(), len(d.Fields), d.LastUpdate.Format("2006-01-02"))
	}

	for _, w := range sf.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}
