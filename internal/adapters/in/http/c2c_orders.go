package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewC2COrder struct {
	Code              string `json:"code"`
	MemberCode        string `json:"member_code"`
	InstitutionCode   string `json:"institution_code"`
	Direction         uint8  `json:"direction"`
	TransactionAmount uint64 `json:"transaction_amount"`
	TotalAmount       uint64 `json:"total_amount"`
}

type StatusChange struct {
	Status uint8 `json:"status"`
}

type Amount struct {
	Amount uint64 `json:"amount"`
}

// CreateC2COrder handles POST /api/v1/c2c-orders.
func (s *Server) CreateC2COrder(c echo.Context) error {
	var req NewC2COrder
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateC2COrderCommand(account, req.Code, req.MemberCode, req.InstitutionCode,
		req.Direction, req.TransactionAmount, req.TotalAmount)
	if err != nil {
		return fail(c, err)
	}
	if err := s.c2cOrders.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// GetC2COrder handles GET /api/v1/c2c-orders/:code.
func (s *Server) GetC2COrder(c echo.Context) error {
	query, err := queries.NewGetRecordQuery(c.Param("code"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.c2cOrders.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateC2COrderStatus handles PUT /api/v1/c2c-orders/:code/status.
func (s *Server) UpdateC2COrderStatus(c echo.Context) error {
	var req StatusChange
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateC2COrderStatusCommand(account, c.Param("code"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	if err := s.c2cOrders.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelC2COrder(c echo.Context) error {
	cmd, err := s.c2cOrderCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.c2cOrders.Cancel.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteC2COrder(c echo.Context) error {
	cmd, err := s.c2cOrderCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.c2cOrders.Complete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteC2COrder(c echo.Context) error {
	cmd, err := s.c2cOrderCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.c2cOrders.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) c2cOrderCommand(c echo.Context) (commands.C2COrderCommand, error) {
	account, err := caller(c)
	if err != nil {
		return commands.C2COrderCommand{}, err
	}
	return commands.NewC2COrderCommand(account, c.Param("code"))
}
