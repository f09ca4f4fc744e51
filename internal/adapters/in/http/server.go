// Package http exposes the command and query handlers over a JSON API.
package http

import (
	"errors"
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CallerHeader carries the account issuing a command. It is trusted as is.
const CallerHeader = "X-Account-ID"

type C2COrderHandlers struct {
	Create       commands.CreateC2COrderCommandHandler
	UpdateStatus commands.UpdateC2COrderStatusCommandHandler
	Cancel       commands.CancelC2COrderCommandHandler
	Complete     commands.CompleteC2COrderCommandHandler
	Delete       commands.DeleteC2COrderCommandHandler
	Get          queries.GetC2COrderQueryHandler
}

type OrderHandlers struct {
	Create            commands.CreateOrderCommandHandler
	UpdateStatus      commands.UpdateOrderStatusCommandHandler
	UpdateExpressInfo commands.UpdateOrderExpressInfoCommandHandler
	Cancel            commands.CancelOrderCommandHandler
	Delete            commands.DeleteOrderCommandHandler
	Get               queries.GetOrderQueryHandler
}

type TokenHandlers struct {
	Create       commands.CreateTokenCommandHandler
	UpdateInfo   commands.UpdateTokenInfoCommandHandler
	UpdateStatus commands.UpdateTokenStatusCommandHandler
	UpdatePrice  commands.UpdateTokenPriceCommandHandler
	UpdateStock  commands.UpdateTokenStockCommandHandler
	Trade        commands.TradeTokenCommandHandler
	Delete       commands.DeleteTokenCommandHandler
	Get          queries.GetTokenQueryHandler
}

type InstitutionHandlers struct {
	Create       commands.CreateInstitutionCommandHandler
	UpdateStatus commands.UpdateInstitutionStatusCommandHandler
	UpdateInfo   commands.UpdateInstitutionInfoCommandHandler
	Delete       commands.DeleteInstitutionCommandHandler
	Get          queries.GetInstitutionQueryHandler
}

type ProductHandlers struct {
	Create       commands.CreateProductCommandHandler
	UpdateInfo   commands.UpdateProductInfoCommandHandler
	UpdateStatus commands.UpdateProductStatusCommandHandler
	UpdateStock  commands.UpdateProductStockCommandHandler
	Purchase     commands.PurchaseProductCommandHandler
	Delete       commands.DeleteProductCommandHandler
	Get          queries.GetProductQueryHandler
}

type FreightTemplateHandlers struct {
	Create commands.CreateFreightTemplateCommandHandler
	Update commands.UpdateFreightTemplateCommandHandler
	Delete commands.DeleteFreightTemplateCommandHandler
	Get    queries.GetFreightTemplateQueryHandler
	Quote  queries.QuoteFreightQueryHandler
}

type PaymentMethodHandlers struct {
	Set         commands.SetPaymentMethodCommandHandler
	UpdateField commands.UpdatePaymentFieldCommandHandler
	Remove      commands.RemovePaymentMethodCommandHandler
	Get         queries.GetPaymentMethodQueryHandler
}

type IndexHandlers struct {
	List  queries.ListBucketQueryHandler
	Audit queries.AuditIndexesQueryHandler
}

// Server routes HTTP requests to the use cases.
type Server struct {
	c2cOrders        C2COrderHandlers
	orders           OrderHandlers
	tokens           TokenHandlers
	institutions     InstitutionHandlers
	products         ProductHandlers
	freightTemplates FreightTemplateHandlers
	paymentMethods   PaymentMethodHandlers
	indexes          IndexHandlers
}

func NewServer(
	c2cOrders C2COrderHandlers,
	orders OrderHandlers,
	tokens TokenHandlers,
	institutions InstitutionHandlers,
	products ProductHandlers,
	freightTemplates FreightTemplateHandlers,
	paymentMethods PaymentMethodHandlers,
	indexes IndexHandlers,
) *Server {
	return &Server{
		c2cOrders:        c2cOrders,
		orders:           orders,
		tokens:           tokens,
		institutions:     institutions,
		products:         products,
		freightTemplates: freightTemplates,
		paymentMethods:   paymentMethods,
		indexes:          indexes,
	}
}

// Register mounts every route under g, normally /api/v1.
func (s *Server) Register(g *echo.Group) {
	g.POST("/c2c-orders", s.CreateC2COrder)
	g.GET("/c2c-orders/:code", s.GetC2COrder)
	g.PUT("/c2c-orders/:code/status", s.UpdateC2COrderStatus)
	g.POST("/c2c-orders/:code/cancel", s.CancelC2COrder)
	g.POST("/c2c-orders/:code/complete", s.CompleteC2COrder)
	g.DELETE("/c2c-orders/:code", s.DeleteC2COrder)

	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:code", s.GetOrder)
	g.PUT("/orders/:code/status", s.UpdateOrderStatus)
	g.PUT("/orders/:code/express", s.UpdateOrderExpressInfo)
	g.POST("/orders/:code/cancel", s.CancelOrder)
	g.DELETE("/orders/:code", s.DeleteOrder)

	g.POST("/institutions/:institution/tokens", s.CreateToken)
	g.GET("/institutions/:institution/tokens/:code", s.GetToken)
	g.PUT("/institutions/:institution/tokens/:code/info", s.UpdateTokenInfo)
	g.PUT("/institutions/:institution/tokens/:code/status", s.UpdateTokenStatus)
	g.PUT("/institutions/:institution/tokens/:code/price", s.UpdateTokenPrice)
	g.PUT("/institutions/:institution/tokens/:code/stock", s.UpdateTokenStock)
	g.POST("/institutions/:institution/tokens/:code/trade", s.TradeToken)
	g.DELETE("/institutions/:institution/tokens/:code", s.DeleteToken)

	g.POST("/institutions/:institution/products", s.CreateProduct)
	g.GET("/institutions/:institution/products/:code", s.GetProduct)
	g.PUT("/institutions/:institution/products/:code/info", s.UpdateProductInfo)
	g.PUT("/institutions/:institution/products/:code/status", s.UpdateProductStatus)
	g.PUT("/institutions/:institution/products/:code/stock", s.UpdateProductStock)
	g.POST("/institutions/:institution/products/:code/purchase", s.PurchaseProduct)
	g.DELETE("/institutions/:institution/products/:code", s.DeleteProduct)

	g.POST("/institutions", s.CreateInstitution)
	g.GET("/institutions/:institution", s.GetInstitution)
	g.PUT("/institutions/:institution/status", s.UpdateInstitutionStatus)
	g.PUT("/institutions/:institution/info", s.UpdateInstitutionInfo)
	g.DELETE("/institutions/:institution", s.DeleteInstitution)

	g.PUT("/institutions/:institution/payment-method", s.SetPaymentMethod)
	g.GET("/institutions/:institution/payment-method", s.GetPaymentMethod)
	g.PUT("/institutions/:institution/payment-method/fields/:field", s.UpdatePaymentField)
	g.DELETE("/institutions/:institution/payment-method", s.RemovePaymentMethod)

	g.POST("/freight-templates", s.CreateFreightTemplate)
	g.GET("/freight-templates/:area", s.GetFreightTemplate)
	g.GET("/freight-templates/:area/quote", s.QuoteFreight)
	g.PUT("/freight-templates/:area", s.UpdateFreightTemplate)
	g.DELETE("/freight-templates/:area", s.DeleteFreightTemplate)

	g.GET("/indexes/audit", s.AuditIndexes)
	g.GET("/indexes/:kind/:family/:bucket", s.ListBucket)
}

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps an error category to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrCapacity):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
	code := StatusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		message = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: message})
}

// badRequest answers a body or parameter that could not be decoded, or a
// command whose constructor rejected it.
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
}

func caller(c echo.Context) (string, error) {
	account := c.Request().Header.Get(CallerHeader)
	if account == "" {
		return "", errs.NewValueIsRequiredError(CallerHeader)
	}
	return account, nil
}

// bind decodes the body into req and reads the caller header.
func bind(c echo.Context, req any) (string, error) {
	if req != nil {
		if err := c.Bind(req); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("request body", err)
		}
	}
	return caller(c)
}
