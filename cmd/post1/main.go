// Command post1 is the first wire-scan post-processing step. It translates
// directories of raw .dat recordings (probe current plus a photoreflector
// digital stream) into current-versus-disc-angle rows appended to a shared
// wire-data file, optionally mirroring the full bin statistics into a
// SQLite results database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/wirescan/internal/batch"
	"github.com/banshee-data/wirescan/internal/config"
	"github.com/banshee-data/wirescan/internal/db"
	"github.com/banshee-data/wirescan/internal/monitoring"
	"github.com/banshee-data/wirescan/internal/wire"
	"github.com/banshee-data/wirescan/internal/wiredata"
)

var (
	output     = flag.String("o", "", "output wire-data file (default <source>/output.wdf)")
	force      = flag.Bool("f", false, "force overwriting a prior output file")
	cpus       = flag.Int("c", 1, "number of parallel workers")
	quiet      = flag.Bool("q", false, "operate quietly; do not print progress")
	view       = flag.Bool("view", false, "generate diagnostic plots of the wire data")
	dbPath     = flag.String("db", "", "optional SQLite results database path")
	configPath = flag.String("config", "", "YAML run configuration file")
	thetaMin   = flag.Float64("theta-min", wire.DefaultThetaMin, "minimum wire angle to include (rad)")
	thetaMax   = flag.Float64("theta-max", wire.DefaultThetaMax, "maximum wire angle to include (rad)")
	thetaStep  = flag.Float64("theta-step", wire.DefaultThetaStep, "wire angle bin width (rad)")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: post1 [flags] <source-dir>

The source directory is expected to contain .dat recordings of wire current
and a photoreflector digital stream. Files beginning with an underscore are
ignored, which allows recordings to be excluded without deletion. Rejected
recordings (missing wire geometry, unstable disc speed) are reported and
skipped; the rest of the batch continues.

`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	var cfg *config.RunConfig
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		applyConfig(cfg)
	}
	// Flags set on the command line take precedence over the config file.
	grid := wire.BinGrid{ThetaMin: *thetaMin, ThetaMax: *thetaMax, ThetaStep: *thetaStep}
	if err := grid.Validate(); err != nil {
		log.Fatalf("bad angle grid: %v", err)
	}

	if *quiet {
		monitoring.SetLogger(nil)
	}

	out := *output
	if out == "" {
		out = filepath.Join(source, "output.wdf")
	}

	files, err := batch.Discover(source)
	if err != nil {
		log.Fatalf("discover recordings: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("no .dat recordings found in %s", source)
	}

	writer, err := wiredata.Create(out, *force)
	if err != nil {
		log.Fatal(err)
	}

	runner := &batch.Runner{
		Grid:    grid,
		Sink:    writer,
		Workers: *cpus,
		View:    *view,
	}

	if *dbPath != "" {
		results, err := db.New(*dbPath)
		if err != nil {
			log.Fatalf("results database: %v", err)
		}
		defer results.Close()
		runID, err := results.CreateScanRun(source, grid)
		if err != nil {
			log.Fatalf("results database: %v", err)
		}
		runner.DB = results
		runner.RunID = runID
	}

	res := runner.Run(files)

	if runner.DB != nil {
		if err := runner.DB.FinishScanRun(runner.RunID, res.Processed, res.Skipped); err != nil {
			log.Printf("results database: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("close output: %v", err)
	}
	log.Printf("processed %d recording(s), skipped %d, output %s", res.Processed, res.Skipped, out)
	if res.Processed == 0 {
		os.Exit(1)
	}
}

// applyConfig seeds flag defaults from the run configuration; flags the user
// set explicitly on the command line win afterwards.
func applyConfig(cfg *config.RunConfig) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.Output != "" && !set["o"] {
		*output = cfg.Output
	}
	if cfg.Workers != nil && !set["c"] {
		*cpus = *cfg.Workers
	}
	if cfg.Quiet != nil && !set["q"] {
		*quiet = *cfg.Quiet
	}
	if cfg.View != nil && !set["view"] {
		*view = *cfg.View
	}
	if cfg.Force != nil && !set["f"] {
		*force = *cfg.Force
	}
	if cfg.Database != "" && !set["db"] {
		*dbPath = cfg.Database
	}
	if cfg.ThetaMin != nil && !set["theta-min"] {
		*thetaMin = *cfg.ThetaMin
	}
	if cfg.ThetaMax != nil && !set["theta-max"] {
		*thetaMax = *cfg.ThetaMax
	}
	if cfg.ThetaStep != nil && !set["theta-step"] {
		*thetaStep = *cfg.ThetaStep
	}
}
