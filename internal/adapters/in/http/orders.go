package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewOrderItem struct {
	ProductCode  string `json:"product_code"`
	Quantity     uint32 `json:"quantity"`
	PricePerUnit uint32 `json:"price_per_unit"`
	Weight       uint32 `json:"weight"`
}

type NewOrder struct {
	Code            string         `json:"code"`
	MemberCode      string         `json:"member_code"`
	InstitutionCode string         `json:"institution_code"`
	Items           []NewOrderItem `json:"items"`
	Freight         uint32         `json:"freight"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email"`
	Address         string         `json:"address"`
}

type ExpressInfo struct {
	Company string `json:"company"`
	Number  string `json:"number"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, commands.OrderLine{
			ProductCode:  item.ProductCode,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			Weight:       item.Weight,
		})
	}
	contact := commands.OrderContact{Phone: req.Phone, Email: req.Email, Address: req.Address}

	cmd, err := commands.NewCreateOrderCommand(account, req.Code, req.MemberCode, req.InstitutionCode,
		lines, req.Freight, contact)
	if err != nil {
		return fail(c, err)
	}
	if err := s.orders.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetRecordQuery(c.Param("code"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.orders.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var req StatusChange
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(account, c.Param("code"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	if err := s.orders.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateOrderExpressInfo(c echo.Context) error {
	var req ExpressInfo
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateOrderExpressInfoCommand(account, c.Param("code"), req.Company, req.Number)
	if err != nil {
		return fail(c, err)
	}
	if err := s.orders.UpdateExpressInfo.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelOrder(c echo.Context) error {
	cmd, err := s.orderCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.orders.Cancel.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteOrder(c echo.Context) error {
	cmd, err := s.orderCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.orders.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) orderCommand(c echo.Context) (commands.OrderCommand, error) {
	account, err := caller(c)
	if err != nil {
		return commands.OrderCommand{}, err
	}
	return commands.NewOrderCommand(account, c.Param("code"))
}
