package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dashwise/dashwise/store"
)

type PageService struct {
	Store *store.Store
}

type CreatePageRequest struct {
	Name         string            `json:"name"`
	Route        string            `json:"route"`
	Description  *string           `json:"description,omitempty"`
	APIEndpoints map[string]string `json:"api_endpoints,omitempty"`
}

type PageResponse struct {
	ID           int32             `json:"id"`
	Name         string            `json:"name"`
	Route        string            `json:"route"`
	Description  *string           `json:"description,omitempty"`
	APIEndpoints map[string]string `json:"api_endpoints"`
	CreatedTs    int64             `json:"created_ts"`
}

func (s *PageService) ListPages(c echo.Context) error {
	pages, err := s.Store.ListPages(c.Request().Context(), &store.FindPage{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list pages").SetInternal(err)
	}

	response := make([]*PageResponse, 0, len(pages))
	for _, page := range pages {
		response = append(response, convertPage(page))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *PageService) CreatePage(c echo.Context) error {
	var request CreatePageRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	request.Name = strings.TrimSpace(request.Name)
	request.Route = strings.TrimSpace(request.Route)
	if request.Name == "" || request.Route == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and route are required")
	}

	page, err := s.Store.CreatePage(c.Request().Context(), &store.Page{
		Name:         request.Name,
		Route:        request.Route,
		Description:  request.Description,
		APIEndpoints: request.APIEndpoints,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create page").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, convertPage(page))
}

func convertPage(page *store.Page) *PageResponse {
	endpoints := page.APIEndpoints
	if endpoints == nil {
		endpoints = map[string]string{}
	}
	return &PageResponse{
		ID:           page.ID,
		Name:         page.Name,
		Route:        page.Route,
		Description:  page.Description,
		APIEndpoints: endpoints,
		CreatedTs:    page.CreatedTs,
	}
}
