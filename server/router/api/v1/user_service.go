package v1

import (
	"net/http"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/ast"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

type UserService struct {
	Store *store.Store
}

type CreateUserRequest struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email,omitempty"`
}

type UserResponse struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email,omitempty"`
	CreatedTs   int64   `json:"created_ts"`
}

// ListUsers returns all users ordered by id. An optional CEL filter of the
// form "name == 'John'" narrows the result.
func (s *UserService) ListUsers(c echo.Context) error {
	find := &store.FindUser{}

	if filter := c.QueryParam("filter"); filter != "" {
		name, err := extractNameFromFilter(filter)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid filter").SetInternal(err)
		}
		if name != "" {
			find.Name = &name
		}
	}

	users, err := s.Store.ListUsers(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users").SetInternal(err)
	}

	response := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, convertUser(user))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *UserService) CreateUser(c echo.Context) error {
	var request CreateUserRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	request.Name = strings.TrimSpace(request.Name)
	if request.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	user, err := s.Store.CreateUser(c.Request().Context(), &store.User{
		Name:        request.Name,
		PhoneNumber: request.PhoneNumber,
		Email:       request.Email,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user").SetInternal(err)
	}
	return c.JSON(http.StatusCreated, convertUser(user))
}

func convertUser(user *store.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		CreatedTs:   user.CreatedTs,
	}
}

// extractNameFromFilter extracts the name value from a CEL filter string.
// Supported filter format: "name == 'John'".
func extractNameFromFilter(filterStr string) (string, error) {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" {
		return "", nil
	}

	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to create CEL environment")
	}

	celAST, issues := env.Compile(filterStr)
	if issues != nil && issues.Err() != nil {
		return "", errors.Wrapf(issues.Err(), "invalid filter expression: %s", filterStr)
	}

	return extractNameFromExpr(celAST.NativeRep().Expr())
}

func extractNameFromExpr(expr ast.Expr) (string, error) {
	if expr == nil {
		return "", errors.New("empty expression")
	}
	if expr.Kind() != ast.CallKind {
		return "", errors.New("filter must be a comparison expression (e.g., name == 'value')")
	}

	call := expr.AsCall()
	if call.FunctionName() != "_==_" {
		return "", errors.Errorf("unsupported operator: %s (only '==' is supported)", call.FunctionName())
	}
	args := call.Args()
	if len(args) != 2 {
		return "", errors.New("invalid comparison expression")
	}

	if name, ok := extractNameFromComparison(args[0], args[1]); ok {
		return name, nil
	}
	if name, ok := extractNameFromComparison(args[1], args[0]); ok {
		return name, nil
	}
	return "", errors.New("filter must compare 'name' field with a string constant")
}

func extractNameFromComparison(left, right ast.Expr) (string, bool) {
	if left.Kind() != ast.IdentKind {
		return "", false
	}
	if left.AsIdent() != "name" {
		return "", false
	}
	if right.Kind() != ast.LiteralKind {
		return "", false
	}
	value, ok := right.AsLiteral().Value().(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
