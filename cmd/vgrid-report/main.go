// Command vgrid-report runs a velocity-grid cluster search over a
// synthetic set of observations and writes a PNG scatter plot and an HTML
// heatmap summarizing the result.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/vgridcluster/internal/cluster"
	"github.com/banshee-data/vgridcluster/internal/clusterconfig"
	"github.com/banshee-data/vgridcluster/internal/clusterstats"
)

func main() {
	outDir := flag.String("o", ".", "output directory for the report files")
	nTracks := flag.Int("tracks", 3, "number of synthetic linear tracks")
	nNoise := flag.Int("noise", 20, "number of scattered noise observations")
	eps := flag.Float64("eps", 0.75, "clustering neighborhood radius")
	minClusterSize := flag.Int("min-cluster-size", 3, "minimum cluster weight")
	nWorkers := flag.Int("workers", 4, "grid-search worker count")
	seed := flag.Int64("seed", 1, "random seed for synthetic data")
	configPath := flag.String("config", "", "path to a JSON search-config file overriding eps/min-cluster-size/workers/algorithm/velocity-grid")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	cfg := clusterconfig.EmptySearchConfig()
	if *configPath != "" {
		loaded, err := clusterconfig.LoadSearchConfig(*configPath)
		if err != nil {
			log.Fatalf("loading search config from %s: %v", *configPath, err)
		}
		cfg = loaded
		log.Printf("loaded search config from %s", *configPath)
	}

	alg := cluster.DBSCAN
	if cfg.Algorithm != nil {
		parsed, err := parseAlgorithm(cfg.GetAlgorithm())
		if err != nil {
			log.Fatalf("search config: %v", err)
		}
		alg = parsed
	}
	if cfg.Eps != nil {
		*eps = cfg.GetEps()
	}
	if cfg.MinClusterSize != nil {
		*minClusterSize = cfg.GetMinClusterSize()
	}
	if cfg.NWorkers != nil {
		*nWorkers = cfg.GetNWorkers()
	}

	rng := rand.New(rand.NewSource(*seed))
	observations, trueVelocities := syntheticObservations(rng, *nTracks, *nNoise)

	grid := velocityGridAround(trueVelocities, 0.25, 4)
	if cfg.VxMin != nil || cfg.VxMax != nil || cfg.VxStep != nil || cfg.VyMin != nil || cfg.VyMax != nil || cfg.VyStep != nil {
		vxs, vys := cfg.VelocityValues()
		grid = cluster.NewVelocityGrid(vxs, vys)
	}

	clusterRows, memberRows, err := cluster.RunGridSearch(observations, grid, alg, *eps, *minClusterSize, *nWorkers)
	if err != nil {
		log.Fatalf("grid search failed: %v", err)
	}
	log.Printf("found %d clusters across %d member observations", len(clusterRows), len(memberRows))

	arcSummary := clusterstats.ArcLengthSummary(clusterRows)
	sizeSummary := clusterstats.ClusterSizeSummary(memberRows)
	log.Printf("arc_length: n=%d p50=%.3f p85=%.3f p98=%.3f", arcSummary.Count, arcSummary.P50, arcSummary.P85, arcSummary.P98)
	log.Printf("cluster_size: n=%d p50=%.1f p85=%.1f p98=%.1f", sizeSummary.Count, sizeSummary.P50, sizeSummary.P85, sizeSummary.P98)

	scatterPath := fmt.Sprintf("%s/vgrid-scatter.png", *outDir)
	if err := writeScatterPNG(scatterPath, observations); err != nil {
		log.Fatalf("writing scatter plot: %v", err)
	}
	log.Printf("wrote %s", scatterPath)

	heatmapPath := fmt.Sprintf("%s/vgrid-heatmap.html", *outDir)
	if err := writeVelocityHeatmap(heatmapPath, clusterRows, arcSummary); err != nil {
		log.Fatalf("writing velocity heatmap: %v", err)
	}
	log.Printf("wrote %s", heatmapPath)
}

// parseAlgorithm maps a search-config algorithm name to its Algorithm tag.
func parseAlgorithm(name string) (cluster.Algorithm, error) {
	switch strings.ToLower(name) {
	case "dbscan":
		return cluster.DBSCAN, nil
	case "hotspot2d":
		return cluster.Hotspot2D, nil
	case "dbscanrstar":
		return cluster.DbscanRStar, nil
	case "dbscanfixed16":
		return cluster.DbscanFixed16, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", name)
	}
}

// syntheticObservations generates nTracks linearly moving point clusters
// plus nNoise scattered stationary observations, returning the
// observations and the true velocity of each track.
func syntheticObservations(rng *rand.Rand, nTracks, nNoise int) ([]cluster.Observation, []cluster.VelocityGrid) {
	var observations []cluster.Observation
	var velocities []cluster.VelocityGrid

	for track := 0; track < nTracks; track++ {
		vx := -2 + rng.Float64()*4
		vy := -2 + rng.Float64()*4
		x0 := rng.Float64() * 50
		y0 := rng.Float64() * 50
		velocities = append(velocities, cluster.NewVelocityGrid([]float64{vx}, []float64{vy}))

		for step := 0; step < 6; step++ {
			t := float64(step)
			observations = append(observations, cluster.NewObservation(
				x0+vx*t+rng.NormFloat64()*0.05,
				y0+vy*t+rng.NormFloat64()*0.05,
				t,
				fmt.Sprintf("track%d-%d", track, step),
			))
		}
	}

	for i := 0; i < nNoise; i++ {
		observations = append(observations, cluster.NewObservation(
			rng.Float64()*200-100,
			rng.Float64()*200-100,
			rng.Float64()*6,
			fmt.Sprintf("noise-%d", i),
		))
	}

	return observations, velocities
}

// velocityGridAround builds a velocity grid spanning every true velocity
// plus a margin, on a step-sized lattice, so each track's velocity lies
// within half a step of some grid point.
func velocityGridAround(trueVelocities []cluster.VelocityGrid, step float64, margin int) cluster.VelocityGrid {
	vxSet := make(map[float64]bool)
	vySet := make(map[float64]bool)
	for _, v := range trueVelocities {
		vx := roundToStep(v.Vxs[0], step)
		vy := roundToStep(v.Vys[0], step)
		for d := -margin; d <= margin; d++ {
			vxSet[vx+float64(d)*step] = true
			vySet[vy+float64(d)*step] = true
		}
	}

	var vxs, vys []float64
	for v := range vxSet {
		vxs = append(vxs, v)
	}
	for v := range vySet {
		vys = append(vys, v)
	}
	return cluster.NewVelocityGrid(vxs, vys)
}

func roundToStep(v, step float64) float64 {
	return float64(int(v/step+0.5)) * step
}

// writeScatterPNG renders the raw observation positions, ignoring time, as
// a scatter plot.
func writeScatterPNG(path string, observations []cluster.Observation) error {
	p := plot.New()
	p.Title.Text = "Observations"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	pts := make(plotter.XYs, len(observations))
	for i, o := range observations {
		pts[i] = plotter.XY{X: o.X, Y: o.Y}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Color = color.RGBA{R: 40, G: 110, B: 200, A: 255}
	scatter.Radius = vg.Points(2)
	p.Add(scatter)

	return p.Save(10*vg.Inch, 10*vg.Inch, path)
}

// writeVelocityHeatmap renders cluster arc_length by velocity as an
// HTML scatter chart colored by arc length, with the overall arc-length
// percentile summary in the subtitle.
func writeVelocityHeatmap(path string, rows []cluster.ClusterRow, arcSummary clusterstats.Summary) error {
	points := make([]opts.ScatterData, 0, len(rows))
	for _, r := range rows {
		points = append(points, opts.ScatterData{Value: []interface{}{r.Vx, r.Vy, r.ArcLength}})
	}

	subtitle := fmt.Sprintf("clusters=%d arc_length p50=%.2f p85=%.2f p98=%.2f", len(rows), arcSummary.P50, arcSummary.P85, arcSummary.P98)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Velocity Grid Search", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Clusters by Velocity", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "vx", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "vy", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("arc_length", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
