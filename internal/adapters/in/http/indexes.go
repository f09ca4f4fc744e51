package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type Bucket struct {
	Kind   string   `json:"kind"`
	Family string   `json:"family"`
	Bucket string   `json:"bucket"`
	Keys   []string `json:"keys"`
}

// ListBucket handles GET /api/v1/indexes/:kind/:family/:bucket.
func (s *Server) ListBucket(c echo.Context) error {
	query, err := queries.NewListBucketQuery(c.Param("kind"), c.Param("family"), c.Param("bucket"))
	if err != nil {
		return fail(c, err)
	}
	keys, err := s.indexes.List.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, Bucket{
		Kind:   c.Param("kind"),
		Family: c.Param("family"),
		Bucket: c.Param("bucket"),
		Keys:   keys,
	})
}

// AuditIndexes handles GET /api/v1/indexes/audit.
func (s *Server) AuditIndexes(c echo.Context) error {
	report, err := s.indexes.Audit.Handle(c.Request().Context(), queries.NewAuditIndexesQuery())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
