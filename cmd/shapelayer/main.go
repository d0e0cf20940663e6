// Command shapelayer inspects and converts ESRI shapefile pairs.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shapelayer",
	Short: "inspect and convert shapefile layers",
	Long: `
shapelayer reads ESRI shapefile pairs (a .shp geometry file and its
sibling .dbf attribute table) and prints their structure or converts
them to GeoJSON and well-known text.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		infoCmd,
		fieldsCmd,
		recordsCmd,
		exportCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
