package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/shapelayer/pkg/layer"
)

func main() {
	manager := layer.NewManager()
	l, err := layer.Import("rivers.shp", manager, "")
	if err != nil {
		log.Fatal(err)
	}
	t := l.Table()
	if t == nil {
		log.Fatal("no attribute table")
	}

	// List the columns and the label field the import picked
	for _, col := range t.Columns() {
		fmt.Printf("%-12s %v\n", col.Name, col.Type)
	}
	fmt.Printf("label field: %s\n", l.LabelField())

	// Sum a numeric column across correlated features
	lengthCol := t.ColumnIndex("LENGTH_KM")
	var total float64
	for _, g := range l.Features() {
		row, ok := l.AttributeRow(g.ID())
		if !ok {
			continue
		}
		v, ok := t.Value(row, lengthCol)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			total += n
		case int64:
			total += float64(n)
		}
	}
	fmt.Printf("LENGTH_KM total: %.1f\n", total)

	// Geometric totals for comparison
	fmt.Printf("Geometry length: %.1f\n", l.TotalLength())
}
