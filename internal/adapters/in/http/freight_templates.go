package http

import (
	"net/http"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/freight"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type NewFreightTemplate struct {
	Area                string `json:"area"`
	FirstWeight         uint32 `json:"first_weight"`
	FirstWeightFee      uint32 `json:"first_weight_fee"`
	AdditionalWeightFee uint32 `json:"additional_weight_fee"`
}

type FreightFees struct {
	FirstWeight         *uint32 `json:"first_weight"`
	FirstWeightFee      *uint32 `json:"first_weight_fee"`
	AdditionalWeightFee *uint32 `json:"additional_weight_fee"`
}

// CreateFreightTemplate handles POST /api/v1/freight-templates.
func (s *Server) CreateFreightTemplate(c echo.Context) error {
	var req NewFreightTemplate
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateFreightTemplateCommand(account, req.Area, freight.Fees{
		FirstWeight:         req.FirstWeight,
		FirstWeightFee:      req.FirstWeightFee,
		AdditionalWeightFee: req.AdditionalWeightFee,
	})
	if err != nil {
		return fail(c, err)
	}
	if err := s.freightTemplates.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) GetFreightTemplate(c echo.Context) error {
	query, err := queries.NewGetRecordQuery(c.Param("area"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.freightTemplates.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// QuoteFreight handles GET /api/v1/freight-templates/:area/quote?weight=N.
func (s *Server) QuoteFreight(c echo.Context) error {
	weight, err := strconv.ParseUint(c.QueryParam("weight"), 10, 32)
	if err != nil {
		return badRequest(c, errs.NewValueIsInvalidErrorWithCause("weight", err))
	}

	query, err := queries.NewQuoteFreightQuery(c.Param("area"), uint32(weight))
	if err != nil {
		return fail(c, err)
	}
	quote, err := s.freightTemplates.Quote.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

func (s *Server) UpdateFreightTemplate(c echo.Context) error {
	var req FreightFees
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateFreightTemplateCommand(account, c.Param("area"), freight.FeesUpdate(req))
	if err != nil {
		return fail(c, err)
	}
	if err := s.freightTemplates.Update.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteFreightTemplate(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return fail(c, err)
	}
	cmd, err := commands.NewFreightTemplateCommand(account, c.Param("area"))
	if err != nil {
		return fail(c, err)
	}
	if err := s.freightTemplates.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
