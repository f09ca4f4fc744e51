package http

import (
	"net/http"
	"strconv"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PaymentMethod lists the channels an institution accepts. A missing channel
// is not offered.
type PaymentMethod struct {
	WeChat *string `json:"wechat"`
	Alipay *string `json:"alipay"`
	Token  *string `json:"token"`
	Other  *string `json:"other"`
}

// PaymentField sets one channel; a null value clears it.
type PaymentField struct {
	Value *string `json:"value"`
}

// SetPaymentMethod handles PUT /api/v1/institutions/:institution/payment-method.
func (s *Server) SetPaymentMethod(c echo.Context) error {
	var req PaymentMethod
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewSetPaymentMethodCommand(account, c.Param("institution"), commands.PaymentChannels(req))
	if err != nil {
		return fail(c, err)
	}
	if err := s.paymentMethods.Set.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetPaymentMethod(c echo.Context) error {
	query, err := queries.NewGetRecordQuery(c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.paymentMethods.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdatePaymentField handles PUT .../payment-method/fields/:field where field
// is 0 wechat, 1 alipay, 2 token or 3 other.
func (s *Server) UpdatePaymentField(c echo.Context) error {
	field, err := strconv.ParseUint(c.Param("field"), 10, 8)
	if err != nil {
		return badRequest(c, errs.NewValueIsInvalidErrorWithCause("field", err))
	}

	var req PaymentField
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdatePaymentFieldCommand(account, c.Param("institution"), uint8(field), req.Value)
	if err != nil {
		return fail(c, err)
	}
	if err := s.paymentMethods.UpdateField.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RemovePaymentMethod(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return fail(c, err)
	}
	cmd, err := commands.NewPaymentMethodCommand(account, c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	if err := s.paymentMethods.Remove.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
