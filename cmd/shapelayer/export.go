package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/shapelayer/pkg/layer"
)

// exportFormat constrains --format to the supported encoders.
type exportFormat string

func (v *exportFormat) String() string { return string(*v) }

func (v *exportFormat) Type() string { return "format" }

func (v *exportFormat) Set(s string) error {
	switch s {
	case "geojson", "wkt":
		*v = exportFormat(s)
		return nil
	}
	return errors.Newf("unknown format %q (want geojson or wkt)", s)
}

var (
	exportTo             = exportFormat("geojson")
	exportOut            string
	exportSkipAttributes bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file.shp>",
	Short: "convert a shapefile pair to GeoJSON or WKT",
	Long: `
Imports the shapefile pair through the layer pipeline and writes it
back out as a GeoJSON feature collection or as one well-known text
geometry per line. Decode warnings go to stderr.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Var(&exportTo, "format", "output format, geojson or wkt")
	f.StringVar(&exportOut, "out", "", "output file, stdout when empty")
	f.BoolVar(&exportSkipAttributes, "skip-attributes", false, "import the geometry file alone")
}

func runExport(cmd *cobra.Command, args []string) error {
	result, err := layer.ImportWithOptions(args[0], layer.NewManager(), layer.ImportOptions{
		SkipAttributes: exportSkipAttributes,
	})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if exportTo == "wkt" {
		return result.Layer.WriteWKT(w)
	}
	return result.Layer.WriteGeoJSON(w)
}
