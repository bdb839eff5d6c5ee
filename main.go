package main

import (
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"os"
	"sgi/bench"
	"sgi/demo"
	"sgi/importing"
	ownIo "sgi/io"
	"sgi/query"
	"sgi/web"
	"strings"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging  string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version  VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Bounds   string      `help:"Bounds of the grid as 'minLon,minLat,maxLon,maxLat', e.g. '-180,-90,180,90'. When not set, the bounds of the input data are used."`
	CellSize float64     `help:"Width and height of the grid cells in degrees." default:"0.1"`
	Query    struct {
		Input  string   `help:"The input file. Either .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Bbox   string   `help:"The query box, e.g. 'bbox(9,53,10,54)'." placeholder:"<bbox>" arg:""`
		Edges  string   `help:"Which edges belong to the box in interval notation: '[]', '()', '[)' or '(]'." default:"[]"`
		Exact  bool     `help:"Remove nodes that are in an intersecting cell but outside the box."`
		Tag    []string `help:"Only return nodes with this tag, e.g. 'amenity=bench', 'amenity!=bench' or 'amenity=*'. Can be given multiple times." short:"t" sep:"none"`
		Output string   `help:"Output GeoJSON file. The result is printed when not set." short:"o" type:"path"`
	} `cmd:"" help:"Returns the nodes of the given OSM file within the box as GeoJSON."`
	Serve struct {
		Input string `help:"The input file. Either .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Port  string `help:"The port of the HTTP server." short:"p" default:"8080"`
	} `cmd:"" help:"Loads the given OSM file and answers queries via HTTP."`
	Demo  struct{} `cmd:"" help:"Runs example queries on a small set of points."`
	Bench struct {
		Points  int   `help:"Number of random points." default:"100000"`
		Queries int   `help:"Number of queries per box size." default:"1000"`
		Seed    int64 `help:"Seed for the random points and boxes." default:"42"`
	} `cmd:"" help:"Compares grid queries with a linear scan over random points."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("Spatial grid index"),
		kong.Description("A uniform grid index to query points within boxes."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "query <input> <bbox>":
		q, err := query.ParseBboxQuery(cli.Query.Bbox, cli.Query.Edges, cli.Query.Exact, cli.Query.Tag...)
		sigolo.FatalCheck(err)

		grid, store, err := importing.Import(cli.Query.Input, gridBounds(), cli.CellSize)
		sigolo.FatalCheck(err)

		result, err := q.Execute(grid, store)
		sigolo.FatalCheck(err)

		sigolo.Debugf("Found %d nodes in %d candidates", len(result.Nodes), result.CandidateCount)

		if cli.Query.Output == "" {
			err = ownIo.WriteNodesAsGeoJson(result.Nodes, os.Stdout)
		} else {
			err = ownIo.WriteNodesAsGeoJsonFile(result.Nodes, cli.Query.Output)
		}
		sigolo.FatalCheck(err)
	case "serve <input>":
		grid, store, err := importing.Import(cli.Serve.Input, gridBounds(), cli.CellSize)
		sigolo.FatalCheck(err)

		web.StartServer(cli.Serve.Port, grid, store)
	case "demo":
		_, err := demo.Run()
		sigolo.FatalCheck(err)
	case "bench":
		config := bench.DefaultConfig()
		config.Points = cli.Bench.Points
		config.Queries = cli.Bench.Queries
		config.Seed = cli.Bench.Seed

		_, err := bench.Run(config)
		sigolo.FatalCheck(err)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

// gridBounds returns nil when the bounds should be determined from the data.
func gridBounds() *orb.Bound {
	bound, err := importing.ParseGridBounds(cli.Bounds)
	sigolo.FatalCheck(err)
	return bound
}
