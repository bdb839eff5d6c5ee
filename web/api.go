package web

import (
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"net/http"
	"sgi/index"
	ownIo "sgi/io"
	ownOsm "sgi/osm"
	"sgi/query"
	"strconv"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{
		Error: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

// StatsResponse describes the grid. All bounds are given as minX, minY, maxX, maxY.
type StatsResponse struct {
	Cells             int         `json:"cells"`
	Points            int         `json:"points"`
	Nx                int         `json:"nx"`
	Ny                int         `json:"ny"`
	Bounds            [4]float64  `json:"bounds"`
	Nodes             int         `json:"nodes"`
	NonEmptyCells     int         `json:"non_empty_cells"`
	MaxCellPoints     int         `json:"max_cell_points"`
	AvgCellPoints     float64     `json:"avg_cell_points"`
	DensestCellBounds *[4]float64 `json:"densest_cell_bounds,omitempty"`
}

// api serves read-only queries on one grid index. Nothing modifies the grid after the import, so concurrent
// requests need no locking.
type api struct {
	grid  *index.GridIndex[float64]
	store *ownOsm.NodeStore
}

func StartServer(port string, grid *index.GridIndex[float64], store *ownOsm.NodeStore) {
	r := NewRouter(grid, store)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func NewRouter(grid *index.GridIndex[float64], store *ownOsm.NodeStore) *mux.Router {
	a := &api{
		grid:  grid,
		store: store,
	}

	r := mux.NewRouter()
	r.HandleFunc("/query", a.handleQuery).Methods(http.MethodGet)
	r.HandleFunc("/stats", a.handleStats).Methods(http.MethodGet)
	return r
}

func (a *api) handleQuery(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")

	parameters := request.URL.Query()
	sigolo.Infof("Query: bbox=%s, edges=%s, exact=%s, tags=%v", parameters.Get("bbox"), parameters.Get("edges"), parameters.Get("exact"), parameters["tag"])

	exact := false
	if exactString := parameters.Get("exact"); exactString != "" {
		var err error
		exact, err = strconv.ParseBool(exactString)
		if err != nil {
			writeError(writer, http.StatusBadRequest, fmt.Sprintf("Invalid value '%s' for parameter 'exact'", exactString), err)
			return
		}
	}

	queryObj, err := query.ParseBboxQuery(parameters.Get("bbox"), parameters.Get("edges"), exact, parameters["tag"]...)
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Error parsing query: %s", err.Error()), err)
		return
	}

	result, err := queryObj.Execute(a.grid, a.store)
	if err != nil {
		writeError(writer, http.StatusInternalServerError, fmt.Sprintf("Error executing query: %s", err.Error()), err)
		return
	}

	sigolo.Debugf("Found %d nodes", len(result.Nodes))

	err = ownIo.WriteNodesAsGeoJson(result.Nodes, writer)
	if err != nil {
		sigolo.Errorf("Error writing query result: %+v", err)
	}
}

func (a *api) handleStats(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")

	nx, ny := a.grid.Dimensions()
	density := index.CellDensity(a.grid)
	stats := StatsResponse{
		Cells:         a.grid.CountCells(),
		Points:        a.grid.CountPoints(),
		Nx:            nx,
		Ny:            ny,
		Bounds:        boundArray(index.GridBound(a.grid)),
		Nodes:         a.store.Len(),
		NonEmptyCells: density.NonEmptyCells,
		MaxCellPoints: density.MaxCellPoints,
		AvgCellPoints: density.AvgCellPoints,
	}
	if density.MaxCellPoints > 0 {
		densestCellBounds := boundArray(index.CellBound(a.grid, density.DensestCell))
		stats.DensestCellBounds = &densestCellBounds
	}

	err := json.NewEncoder(writer).Encode(stats)
	if err != nil {
		sigolo.Errorf("Error writing stats response: %+v", err)
	}
}

func boundArray(bound orb.Bound) [4]float64 {
	return [4]float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()}
}

func writeError(writer http.ResponseWriter, status int, message string, err error) {
	sigolo.Errorf("%s: %+v", message, err)
	writer.WriteHeader(status)

	errorResponseBytes, err := json.Marshal(NewErrorResponse(message, err))
	if err != nil {
		sigolo.Errorf("Error creating and marshalling error response object: %+v", err)
		return
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
