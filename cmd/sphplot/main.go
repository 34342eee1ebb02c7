package main

import (
	"fmt"
	"log"
	"os"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/Aric1996/SPHinXsys/diag"
)

var (
	colors = []string{
		"DarkSlateBlue", "DarkTurquoise", "DarkViolet",
		"DeepPink", "DimGray", "DarkSlateGray",
	}
)

func main() {
	// Argument parsing.
	if len(os.Args) != 3 {
		log.Fatalf(
			"Usage: %s diagnostics.csv plot_dir", os.Args[0],
		)
	}
	csvName, plotDir := os.Args[1], os.Args[2]

	records, err := diag.Read(csvName)
	if err != nil {
		log.Fatal(err.Error())
	}
	if len(records) == 0 {
		log.Fatal("No records in diagnostics file.")
	}

	if err = os.MkdirAll(plotDir, 0777); err != nil {
		log.Fatal(err.Error())
	}

	byBody := splitByBody(records)

	plotMaxSpeed(byBody, path.Join(plotDir, "max_speed.png"))
	plotUpperFront(byBody, path.Join(plotDir, "upper_front.png"))

	plt.Execute()
}

// bodySeries is the per-body diagnostics history in step order.
type bodySeries struct {
	name    string
	records []diag.StepRecord
}

// splitByBody groups the flat record list into one series per body,
// preserving the order bodies first appear in.
func splitByBody(records []diag.StepRecord) []bodySeries {
	idx := map[string]int{}
	series := []bodySeries{}

	for _, rec := range records {
		i, ok := idx[rec.Body]
		if !ok {
			i = len(series)
			idx[rec.Body] = i
			series = append(series, bodySeries{name: rec.Body})
		}
		series[i].records = append(series[i].records, rec)
	}
	return series
}

func plotMaxSpeed(byBody []bodySeries, fname string) {
	plt.Figure()

	for i, s := range byBody {
		ts, vs := make([]float64, len(s.records)), make([]float64, len(s.records))
		for j, rec := range s.records {
			ts[j], vs[j] = rec.Time, rec.MaxSpeed
		}
		plt.Plot(ts, vs, plt.LW(2), plt.C(colors[i%len(colors)]))
	}

	plt.Title(fmt.Sprintf("Maximum speed, %d bodies", len(byBody)))
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$|v|_{\rm max}$`, plt.FontSize(16))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(fname)
}

func plotUpperFront(byBody []bodySeries, fname string) {
	plt.Figure()

	for i, s := range byBody {
		ts, xs := make([]float64, len(s.records)), make([]float64, len(s.records))
		for j, rec := range s.records {
			ts[j], xs[j] = rec.Time, rec.UpperFront
		}
		plt.Plot(ts, xs, plt.LW(2), plt.C(colors[i%len(colors)]))
	}

	plt.Title(fmt.Sprintf("Upper front position, %d bodies", len(byBody)))
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$x_{\rm front}$`, plt.FontSize(16))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(fname)
}
