package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hifzhub/murajaah/internal/entity"
)

// httpError maps domain sentinels onto HTTP status codes. Unknown errors
// fall through as 500 so echo's error handler logs them.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrInvalidConfidence),
		errors.Is(err, entity.ErrInvalidVerseRef),
		errors.Is(err, entity.ErrInvalidActivityKind),
		errors.Is(err, entity.ErrInvalidPlan):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrReviewItemNotFound),
		errors.Is(err, entity.ErrAnalysisNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrDuplicateReviewItem):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrStaleWriteConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
