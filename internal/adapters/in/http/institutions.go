package http

import (
	"net/http"

	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewInstitution struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	FullName          string  `json:"full_name"`
	LicenseImageURL   string  `json:"license_image_url"`
	ResponsiblePerson string  `json:"responsible_person"`
	BusinessScope     string  `json:"business_scope"`
	ProfitContract    *string `json:"profit_contract"`
}

type InstitutionInfo struct {
	Name              *string `json:"name"`
	FullName          *string `json:"full_name"`
	LicenseImageURL   *string `json:"license_image_url"`
	ResponsiblePerson *string `json:"responsible_person"`
	BusinessScope     *string `json:"business_scope"`
	ProfitContract    *string `json:"profit_contract"`
}

// CreateInstitution handles POST /api/v1/institutions.
func (s *Server) CreateInstitution(c echo.Context) error {
	var req NewInstitution
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCreateInstitutionCommand(account, req.ID, commands.InstitutionRegistration{
		Name:              req.Name,
		FullName:          req.FullName,
		LicenseImageURL:   req.LicenseImageURL,
		ResponsiblePerson: req.ResponsiblePerson,
		BusinessScope:     req.BusinessScope,
		ProfitContract:    req.ProfitContract,
	})
	if err != nil {
		return fail(c, err)
	}
	if err := s.institutions.Create.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) GetInstitution(c echo.Context) error {
	query, err := queries.NewGetRecordQuery(c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	view, err := s.institutions.Get.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) UpdateInstitutionStatus(c echo.Context) error {
	var req StatusChange
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateInstitutionStatusCommand(account, c.Param("institution"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	if err := s.institutions.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateInstitutionInfo(c echo.Context) error {
	var req InstitutionInfo
	account, err := bind(c, &req)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateInstitutionInfoCommand(account, c.Param("institution"),
		commands.InstitutionInfoChanges(req))
	if err != nil {
		return fail(c, err)
	}
	if err := s.institutions.UpdateInfo.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteInstitution(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return fail(c, err)
	}
	cmd, err := commands.NewInstitutionCommand(account, c.Param("institution"))
	if err != nil {
		return fail(c, err)
	}
	if err := s.institutions.Delete.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
