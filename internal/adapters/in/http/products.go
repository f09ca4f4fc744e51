package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewProduct struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand"`
	AuthorizedGroups []string `json:"authorized_groups"`
	OriginalPrice    uint64   `json:"original_price"`
	CurrentPrice     uint64   `json:"current_price"`
	Description      string   `json:"description"`
	MainImage        string   `json:"main_image"`
	DetailImages     []string `json:"detail_images"`
	Weight           uint32   `json:"weight"`
	ProfitRatio      uint32   `json:"profit_ratio"`
	Stock            uint64   `json:"stock"`
}

// ProductInfo holds optional replacements; absent fields are kept.
type ProductInfo struct {
	Name             *string   `json:"name"`
	Category         *string   `json:"category"`
	Brand            *string   `json:"brand"`
	AuthorizedGroups *[]string `json:"authorized_groups"`
	OriginalPrice    *uint64   `json:"original_price"`
	CurrentPrice     *uint64   `json:"current_price"`
	Description      *string   `json:"description"`
	MainImage        *string   `json:"main_image"`
	DetailImages     *[]string `json:"detail_images"`
	Weight           *uint32   `json:"weight"`
	ProfitRatio      *uint32   `json:"profit_ratio"`
}

// CreateProduct handles POST /api/v1/institutions/:institution/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var req NewProduct
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateProductCommand(account, req.Code, c.Param("institution"), commands.ProductListing{
		Name:             req.Name,
		Category:         req.Category,
		Brand:            req.Brand,
		AuthorizedGroups: req.AuthorizedGroups,
		OriginalPrice:    req.OriginalPrice,
		CurrentPrice:     req.CurrentPrice,
		Description:      req.Description,
		MainImage:        req.MainImage,
		DetailImages:     req.DetailImages,
		Weight:           req.Weight,
		ProfitRatio:      req.ProfitRatio,
		Stock:            req.Stock,
	})
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) GetProduct(c echo.Context) error {
	query, err := queries.NewGetListedRecordQuery(c.Param("code"), c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.products.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) UpdateProductInfo(c echo.Context) error {
	var req ProductInfo
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateProductInfoCommand(account, c.Param("code"), c.Param("institution"),
		commands.ProductInfoChanges(req))
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.UpdateInfo.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateProductStatus(c echo.Context) error {
	var req StatusChange
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateProductStatusCommand(account, c.Param("code"), c.Param("institution"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateProductStock(c echo.Context) error {
	cmd, err := s.productAmountCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.UpdateStock.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PurchaseProduct handles POST .../products/:code/purchase. Any account may
// purchase.
func (s *Server) PurchaseProduct(c echo.Context) error {
	cmd, err := s.productAmountCommand(c)
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.Purchase.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteProduct(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return fail(c, err)
	}
	cmd, err := commands.NewProductCommand(account, c.Param("code"), c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	if err := s.products.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) productAmountCommand(c echo.Context) (commands.ProductAmountCommand, error) {
	var req Amount
	account, err := bind(c, &req)
	if err != nil {
		return commands.ProductAmountCommand{}, err
	}
	return commands.NewProductAmountCommand(account, c.Param("code"), c.Param("institution"), req.Amount)
}
