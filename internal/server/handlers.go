package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/layoutopt/internal/problem"
	"github.com/katalvlaran/layoutopt/internal/render"
	"github.com/katalvlaran/layoutopt/matrix"
	"github.com/katalvlaran/layoutopt/qap"
)

// bind decodes the request body and resolves matrices and options.
func (server *Server) bind(ctx *gin.Context) (flow, dist *matrix.Dense, opts qap.Options, err error) {
	var req problem.Problem
	if err = ctx.ShouldBindJSON(&req); err != nil {
		return nil, nil, opts, fmt.Errorf("%w: %w", problem.ErrInvalidProblem, err)
	}
	if flow, dist, err = req.Matrices(); err != nil {
		return nil, nil, opts, err
	}
	if opts, err = req.Options(server.config.SolverOptions()); err != nil {
		return nil, nil, opts, err
	}
	return flow, dist, opts, nil
}

// solve handles POST /v1/solve. An interrupted run is still a 200 answer:
// the report carries complete=false and the reason in "warning".
func (server *Server) solve(ctx *gin.Context) {
	flow, dist, opts, err := server.bind(ctx)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	res, err := qap.Solve(ctx.Request.Context(), flow, dist, opts)
	recordSolve(res, err)
	report := render.NewReport(res)
	if err != nil {
		if !errors.Is(err, qap.ErrInterrupted) {
			abortWithError(ctx, err)
			return
		}
		report.Warning = err.Error()
	}

	server.logger.Info("solve finished",
		"request_id", ctx.GetString(RequestIDKey),
		"n", flow.Rows(),
		"algo", res.Algo.String(),
		"cost", res.Cost,
		"evaluations", res.Evaluations,
		"complete", res.Complete,
		"elapsed", res.Elapsed,
	)
	ctx.JSON(http.StatusOK, report)
}

// compare handles POST /v1/compare.
func (server *Server) compare(ctx *gin.Context) {
	flow, dist, opts, err := server.bind(ctx)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	cmp, err := qap.Compare(ctx.Request.Context(), flow, dist, opts)
	if err != nil && !errors.Is(err, qap.ErrInterrupted) {
		abortWithError(ctx, err)
		return
	}
	if cmp.Heuristic.Evaluations > 0 {
		recordSolve(cmp.Heuristic, nil)
	}
	if cmp.Exact.Evaluations > 0 {
		recordSolve(cmp.Exact, nil)
	}

	out := render.NewComparison(cmp)
	if err != nil {
		out.Warning = err.Error()
	}
	server.logger.Info("compare finished",
		"request_id", ctx.GetString(RequestIDKey),
		"n", flow.Rows(),
		"exact", cmp.Exact.Cost,
		"heuristic", cmp.Heuristic.Cost,
		"gap", cmp.Gap,
		"complete", err == nil,
	)
	ctx.JSON(http.StatusOK, out)
}
