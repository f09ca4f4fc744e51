package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewToken struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     uint64 `json:"price"`
	Direction uint8  `json:"direction"`
	Stock     uint64 `json:"stock"`
}

// TokenInfo holds optional replacements; absent fields are kept.
type TokenInfo struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Price     *uint64 `json:"price"`
	Direction *uint8  `json:"direction"`
}

// CreateToken handles POST /api/v1/institutions/:institution/tokens.
func (s *Server) CreateToken(c echo.Context) error {
	var req NewToken
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateTokenCommand(account, req.Code, c.Param("institution"), commands.TokenListing{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Direction: req.Direction,
		Stock:     req.Stock,
	})
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) GetToken(c echo.Context) error {
	query, err := queries.NewGetListedRecordQuery(c.Param("code"), c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.tokens.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) UpdateTokenInfo(c echo.Context) error {
	var req TokenInfo
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateTokenInfoCommand(account, c.Param("code"), c.Param("institution"),
		commands.TokenInfoChanges(req))
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.UpdateInfo.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateTokenStatus(c echo.Context) error {
	var req StatusChange
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateTokenStatusCommand(account, c.Param("code"), c.Param("institution"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateTokenPrice(c echo.Context) error {
	cmd, err := s.tokenAmountCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.UpdatePrice.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateTokenStock(c echo.Context) error {
	cmd, err := s.tokenAmountCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.UpdateStock.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TradeToken handles POST /api/v1/institutions/:institution/tokens/:code/trade.
// Any account may trade.
func (s *Server) TradeToken(c echo.Context) error {
	cmd, err := s.tokenAmountCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.Trade.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteToken(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return fail(c, err)
	}
	cmd, err := commands.NewTokenCommand(account, c.Param("code"), c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	if err := s.tokens.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) tokenAmountCommand(c echo.Context) (commands.TokenAmountCommand, error) {
	var req Amount
	account, err := bind(c, &req)
	if err != nil {
		return commands.TokenAmountCommand{}, err
	}
	return commands.NewTokenAmountCommand(account, c.Param("code"), c.Param("institution"), req.Amount)
}
