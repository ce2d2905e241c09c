package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hifzhub/murajaah/internal/repository"
	"github.com/hifzhub/murajaah/internal/usecase"
)

type ledgerAPI struct {
	ledger usecase.LedgerUsecase
}

// RegisterLedgerAPI mounts hasanat total, history and recitation logging.
func RegisterLedgerAPI(g *echo.Group, ledger usecase.LedgerUsecase) {
	a := ledgerAPI{ledger: ledger}
	g.GET("/users/:user_id/hasanat", a.getTotal)
	g.GET("/users/:user_id/hasanat/entries", a.listEntries)
	g.POST("/recitations", a.logRecitation)
}

type hasanatTotalResponse struct {
	UserID int64 `json:"user_id"`
	Total  int64 `json:"total"`
}

func (a *ledgerAPI) getTotal(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	total, err := a.ledger.Total(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hasanatTotalResponse{UserID: userID, Total: total})
}

func (a *ledgerAPI) listEntries(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	query := &repository.ListLedgerQuery{UserID: userID}
	query.Filter = c.QueryParam("filter")
	query.OrderBy = c.QueryParam("order_by")
	bindPagination(c, &query.Pagination)

	entries, total, err := a.ledger.List(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"entries": entries, "total": total})
}

type logRecitationRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Text   string `json:"text" validate:"required"`
	Note   string `json:"note" validate:"max=500"`
}

func (a *ledgerAPI) logRecitation(c echo.Context) error {
	req := new(logRecitationRequest)
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := a.ledger.LogRecitation(c.Request().Context(), req.UserID, req.Text, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func parseUserID(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "user_id must be a positive integer")
	}
	return userID, nil
}
