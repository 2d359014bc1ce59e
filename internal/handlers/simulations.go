package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cooling_control/internal/models"
	"cooling_control/internal/repository"
	"cooling_control/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errRunSimulation   = "failed to run simulation"
	errLoadSimulation  = "failed to load simulation"
	errListSimulations = "failed to list simulations"
	errNotFound        = "simulation not found"
	errInvalidBodyPref = "invalid body: "
)

// RunSimulationRequest is the body of POST /api/v1/simulations. The
// controller tuning comes from configuration; a body carrying "control" is
// rejected.
type RunSimulationRequest struct {
	models.SimulationConfig
	// Seed makes a RANDOM run reproducible; omitted means a fresh seed.
	Seed *uint64 `json:"seed,omitempty" example:"42"`
}

func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// writeServiceError maps service errors to HTTP codes: bad input is 400, an
// unknown run is 404 and anything else is a logged 500.
func (h *Handler) writeServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case service.IsInvalidConfiguration(err), errors.Is(err, service.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Run a simulation
// @Description  Validates the configuration, runs it to completion or fault and stores the series for the caller.
// @Description  Hysteresis band and cooling power come from the service configuration; a body with "control" is rejected.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body      RunSimulationRequest  true  "Simulation configuration"
// @Success      201   {object}  service.RunOutcome
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations [post]
// @Security     BearerAuth
func (h *Handler) runSimulation(c *gin.Context) {
	var req RunSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	out, err := h.services.Simulation.Run(c.Request.Context(), service.RunParams{
		Config: req.SimulationConfig,
		Seed:   req.Seed,
		UserID: currentUserID(c),
	})
	if err != nil {
		h.writeServiceError(c, errRunSimulation, "simulation_run_failed", err, "mode", req.Mode)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary      List simulations
// @Tags         simulations
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50, max 500)"
// @Param        offset  query     int  false  "Rows to skip"
// @Success      200     {object}  map[string]interface{}  "count, runs"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/simulations [get]
// @Security     BearerAuth
func (h *Handler) listSimulations(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := h.services.Results.List(c.Request.Context(), service.ListParams{
		UserID: currentUserID(c),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeServiceError(c, errListSimulations, "simulation_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(runs), "runs": runs})
}

// @Summary      Get a simulation
// @Tags         simulations
// @Produce      json
// @Param        id   path      string  true  "Run id"
// @Success      200  {object}  models.Run
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSimulation(c *gin.Context) {
	run, err := h.services.Results.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, errLoadSimulation, "simulation_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      Get the time series of a simulation
// @Tags         simulations
// @Produce      json
// @Param        id   path      string  true  "Run id"
// @Success      200  {object}  map[string]interface{}  "count, samples"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id}/samples [get]
// @Security     BearerAuth
func (h *Handler) getSamples(c *gin.Context) {
	samples, err := h.services.Results.Samples(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, errLoadSimulation, "simulation_samples_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(samples), "samples": samples})
}

// @Summary      Get descriptive statistics of a simulation
// @Tags         simulations
// @Produce      json
// @Param        id   path      string  true  "Run id"
// @Success      200  {object}  report.Summary
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id}/summary [get]
// @Security     BearerAuth
func (h *Handler) getSummary(c *gin.Context) {
	sum, err := h.services.Results.Summary(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, errLoadSimulation, "simulation_summary_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Export a simulation as CSV
// @Tags         simulations
// @Produce      text/csv
// @Param        id   path      string  true  "Run id"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/simulations/{id}/export [get]
// @Security     BearerAuth
func (h *Handler) exportSimulation(c *gin.Context) {
	id := c.Param("id")
	var buf bytes.Buffer
	if err := h.services.Results.ExportCSV(c.Request.Context(), currentUserID(c), id, &buf); err != nil {
		h.writeServiceError(c, errLoadSimulation, "simulation_export_failed", err, "id", id)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="simulation_%s.csv"`, id))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(c *gin.Context, name string) (int, error) {
	s := c.Query(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %q: must be a non-negative integer", name)
	}
	return v, nil
}
