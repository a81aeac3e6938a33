package handler // handler defines the HTTP handlers of the API

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
	"github.com/iliyamo/screenscout/internal/service"
)

// respondErr translates service and repository errors into status codes.
// Unknown errors are logged and answered with a generic 500 so driver
// messages never reach the client.
func respondErr(c echo.Context, err error) error {
	var status int
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrInvalidKind):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrConflict):
		status, msg = http.StatusConflict, "resource is still referenced"
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefresh):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInactive), errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	default:
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		status, msg = http.StatusInternalServerError, "internal error"
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// paramID parses a positive numeric path parameter.
func paramID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

func queryUint(c echo.Context, name string) (uint64, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New(name + " must be a positive integer")
	}
	return n, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &f, nil
}

// parsePage reads ?limit and ?offset.  Range checks happen in the service
// so every caller gets the same validation message.
func parsePage(c echo.Context) (model.Page, error) {
	limit, err := queryInt(c, "limit", model.DefaultLimit)
	if err != nil {
		return model.Page{}, err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return model.Page{}, err
	}
	return model.Page{Limit: limit, Offset: offset}, nil
}

// parseTitleFilter reads the movie/series listing filters.
func parseTitleFilter(c echo.Context) (model.TitleFilter, error) {
	var (
		f   model.TitleFilter
		err error
	)
	if f.Page, err = parsePage(c); err != nil {
		return f, err
	}
	f.Title = strings.TrimSpace(c.QueryParam("title"))
	if f.ProductionYear, err = queryInt(c, "production_year", 0); err != nil {
		return f, err
	}
	if f.CountryID, err = queryUint(c, "country_id"); err != nil {
		return f, err
	}
	if f.GenreID, err = queryUint(c, "genre_id"); err != nil {
		return f, err
	}
	if f.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return f, err
	}
	if f.MaxRating, err = queryFloat(c, "max_rating"); err != nil {
		return f, err
	}
	return f, nil
}

// page is the envelope of every listing response.
type page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func newPage[T any](items []T, total int64, p model.Page) page[T] {
	if items == nil {
		items = []T{}
	}
	return page[T]{Items: items, Total: total, Limit: p.Limit, Offset: p.Offset}
}
