package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dashwise/dashwise/store"
)

type RoleService struct {
	Store *store.Store
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type RoleResponse struct {
	ID          int32    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	CreatedTs   int64    `json:"created_ts"`
}

func (s *RoleService) ListRoles(c echo.Context) error {
	roles, err := s.Store.ListRoles(c.Request().Context(), &store.FindRole{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list roles").SetInternal(err)
	}

	response := make([]*RoleResponse, 0, len(roles))
	for _, role := range roles {
		response = append(response, convertRole(role))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *RoleService) CreateRole(c echo.Context) error {
	var request CreateRoleRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	request.Name = strings.TrimSpace(request.Name)
	if request.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	role, err := s.Store.CreateRole(c.Request().Context(), &store.Role{
		Name:        request.Name,
		Description: request.Description,
		Permissions: request.Permissions,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create role").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, convertRole(role))
}

func convertRole(role *store.Role) *RoleResponse {
	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return &RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
		CreatedTs:   role.CreatedTs,
	}
}
