package util

import (
	"io"

	"hh-server/models/pin"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PinMarker is a pin labelled with the restaurant it belongs to.
type PinMarker struct {
	Name string
	Pin  pin.Pin
}

// RenderPinsMap writes an HTML page plotting every marker on a geo chart.
// The selected marker, when present, is drawn as its own highlighted series.
func RenderPinsMap(w io.Writer, title string, markers []PinMarker, selected *PinMarker) error {
	points := make([]opts.GeoData, 0, len(markers))
	for _, m := range markers {
		points = append(points, geoPoint(m))
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Deals", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(false),
			Formatter: "{b}",
		}),
	)
	if selected != nil {
		geo.AddSeries("Selected", types.ChartEffectScatter, []opts.GeoData{geoPoint(*selected)},
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}

	return geo.Render(w)
}

func geoPoint(m PinMarker) opts.GeoData {
	return opts.GeoData{
		Name:  m.Name,
		Value: []float64{m.Pin.Lon, m.Pin.Lat, float64(m.Pin.RecordID)},
	}
}
