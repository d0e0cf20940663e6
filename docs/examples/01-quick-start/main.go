package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapelayer/pkg/layer"
)

func main() {
	// Import a shapefile pair into a fresh manager
	manager := layer.NewManager()
	l, err := layer.Import("parcels.shp", manager, "")
	if err != nil {
		log.Fatal(err)
	}

	// Print layer info
	fmt.Printf("Layer: %s (%v)\n", l.Name(), l.Kind())
	fmt.Printf("Features: %d\n", l.FeatureCount())

	bounds := l.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)

	// Walk the features with their label text
	for _, g := range l.Features() {
		fmt.Printf("  #%d %v %q\n", g.ID(), g.Kind(), l.LabelText(g.ID()))
	}
}
