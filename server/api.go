package server

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/hydrokit/auth"
	"github.com/kbukum/hydrokit/catalog"
	apperrors "github.com/kbukum/hydrokit/errors"
	"github.com/kbukum/hydrokit/logger"
	"github.com/kbukum/hydrokit/observability"
	"github.com/kbukum/hydrokit/server/middleware"
)

// HydrationAPI exposes a tree catalog over HTTP.
type HydrationAPI struct {
	catalog *catalog.Catalog
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewHydrationAPI creates the API around a catalog.
func NewHydrationAPI(cat *catalog.Catalog, log *logger.Logger) *HydrationAPI {
	return &HydrationAPI{
		catalog: cat,
		log:     log.WithComponent("api"),
	}
}

// WithMetrics attaches metric instruments; hydration runs then record
// run-level metrics.
func (a *HydrationAPI) WithMetrics(metrics *observability.Metrics) *HydrationAPI {
	a.metrics = metrics
	return a
}

// HydrateRequest is the body of a hydration call. Input is handed to the root
// operation as-is; Select names the nodes whose subtrees should run in
// addition to the root.
type HydrateRequest struct {
	Input  any      `json:"input"`
	Select []string `json:"select,omitempty"`
}

// Register mounts the v1 routes on the engine. Any middleware passed in (for
// example the auth middleware) is applied to the whole group, keeping the
// operational endpoints outside it open.
func (a *HydrationAPI) Register(engine *gin.Engine, mw ...gin.HandlerFunc) {
	v1 := engine.Group("/v1", mw...)
	v1.GET("/trees", a.listTrees)
	v1.GET("/trees/:tree", a.describeTree)
	v1.POST("/trees/:tree/hydrate", a.hydrate)
}

// listTrees responds with the names of all registered trees.
func (a *HydrationAPI) listTrees(c *gin.Context) {
	RespondOK(c, gin.H{"trees": a.catalog.Trees()})
}

// describeTree responds with the stored definition of one tree. Source
// header values are masked so API keys in definitions never leave the
// process.
func (a *HydrationAPI) describeTree(c *gin.Context) {
	def, err := a.catalog.Describe(c.Param("tree"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, def.Redacted())
}

// hydrate runs one tree against the request input and responds with the
// merged document.
func (a *HydrationAPI) hydrate(c *gin.Context) {
	tree := c.Param("tree")

	if claims, ok := auth.ClaimsFromContext(c.Request.Context()); ok && !claims.AllowsTree(tree) {
		RespondWithError(c, apperrors.Forbidden("Token scopes do not cover this tree."))
		return
	}

	var req HydrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", "request body must be valid JSON").WithCause(err))
		return
	}

	builder, err := a.catalog.Build(tree)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if len(req.Select) > 0 {
		if err := builder.SelectNames(req.Select...); err != nil {
			RespondWithError(c, err)
			return
		}
	}

	rc := observability.NewRunContext(tree, "", middleware.GetRequestID(c), a.metrics)
	ctx := observability.WithRunContext(c.Request.Context(), rc)
	ctx, span := rc.StartSpanForRun(ctx)

	result, err := builder.Run(ctx, req.Input)
	if err != nil {
		rc.EndRun(ctx, span, "error", err)
		a.log.Error("Hydration failed", map[string]interface{}{
			"tree":       tree,
			"run_id":     rc.RunID,
			"request_id": rc.RequestID,
			"error":      err.Error(),
		})
		RespondWithError(c, err)
		return
	}
	rc.EndRun(ctx, span, "ok", nil)

	a.log.Debug("Hydration complete", map[string]interface{}{
		"tree":        tree,
		"run_id":      rc.RunID,
		"nodes":       len(result),
		"duration_ms": rc.Duration().Milliseconds(),
	})

	RespondOKWithMeta(c, result, &Meta{
		RunID:      rc.RunID,
		Tree:       tree,
		DurationMs: rc.Duration().Milliseconds(),
	})
}
