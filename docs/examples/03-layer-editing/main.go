package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapelayer/pkg/geo"
	"github.com/beetlebugorg/shapelayer/pkg/layer"
)

func main() {
	manager := layer.NewManager()

	// Build two point layers by hand
	north, _ := manager.CreateLayer("north", geo.KindPoint)
	north.AddFeatures([]geo.Geometry{
		geo.NewPoint(1, 5), geo.NewPoint(2, 6), geo.NewPoint(3, 7),
	})
	south, _ := manager.CreateLayer("south", geo.KindPoint)
	south.AddFeatures([]geo.Geometry{
		geo.NewPoint(1, -5), geo.NewPoint(2, -6),
	})

	// Merge them; ids are renumbered across the result
	all, ok := manager.MergeLayers([]string{"north", "south"}, "all-sites")
	if !ok {
		log.Fatal("merge failed")
	}
	fmt.Printf("Merged: %d features\n", all.FeatureCount())
	for _, p := range all.Points() {
		fmt.Printf("  #%d (%g, %g)\n", p.ID(), p.X, p.Y)
	}

	// Remove a feature; ids close the gap and stay dense
	all.RemoveFeatureAt(2)
	fmt.Printf("After removal: %d features\n", all.FeatureCount())
	for _, p := range all.Points() {
		fmt.Printf("  #%d (%g, %g)\n", p.ID(), p.X, p.Y)
	}

	// Clone the result and push the copy to the bottom of the stack
	manager.CloneLayer("all-sites", "backup")
	manager.MoveLayerToPosition("backup", 0)
	for i, l := range manager.Layers() {
		fmt.Printf("%d: %s (%d features)\n", i, l.Name(), l.FeatureCount())
	}

	stats := manager.Stats()
	fmt.Printf("%d layers, %d features total\n", stats.LayerCount, stats.FeatureCount)
}
