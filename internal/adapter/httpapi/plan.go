package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/repository"
	"github.com/hifzhub/murajaah/internal/usecase"
)

type planAPI struct {
	plans usecase.PlanUsecase
}

// RegisterPlanAPI mounts plan initialization and due listing routes.
func RegisterPlanAPI(g *echo.Group, plans usecase.PlanUsecase) {
	a := planAPI{plans: plans}
	g.POST("/plans/:plan_id/items", a.initializeItems)
	g.GET("/students/:student_id/due", a.listDue)
}

type initializeItemsRequest struct {
	StudentID int64     `json:"student_id" validate:"required,gt=0"`
	Ranges    []string  `json:"ranges" validate:"required,min=1,dive,min=3"`
	StartAt   time.Time `json:"start_at"`
}

type initializeItemsResponse struct {
	Items []reviewItemView `json:"items"`
	Total int              `json:"total"`
}

func (a *planAPI) initializeItems(c echo.Context) error {
	planID, err := strconv.ParseInt(c.Param("plan_id"), 10, 64)
	if err != nil || planID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "plan_id must be a positive integer")
	}

	req := new(initializeItemsRequest)
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	var verses []entity.VerseRef
	for _, raw := range req.Ranges {
		refs, err := entity.ParseVerseRange(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid range "+raw)
		}
		verses = append(verses, refs...)
	}

	items, err := a.plans.InitializePlanItems(c.Request().Context(), planID, req.StudentID, verses, req.StartAt)
	if err != nil {
		return httpError(err)
	}

	views := make([]reviewItemView, 0, len(items))
	for i := range items {
		views = append(views, toReviewItemView(&items[i]))
	}
	return c.JSON(http.StatusCreated, initializeItemsResponse{Items: views, Total: len(views)})
}

type listDueResponse struct {
	Items []reviewItemView `json:"items"`
	Total int64            `json:"total"`
}

func (a *planAPI) listDue(c echo.Context) error {
	studentID, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id must be a positive integer")
	}

	query := &repository.ListDueQuery{StudentID: studentID}
	query.Filter = c.QueryParam("filter")
	query.OrderBy = c.QueryParam("order_by")
	bindPagination(c, &query.Pagination)
	if raw := c.QueryParam("due_before"); raw != "" {
		dueBefore, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "due_before must be RFC 3339")
		}
		query.DueBefore = dueBefore
	}

	items, total, err := a.plans.ListDueItems(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}

	views := make([]reviewItemView, 0, len(items))
	for i := range items {
		views = append(views, toReviewItemView(&items[i]))
	}
	return c.JSON(http.StatusOK, listDueResponse{Items: views, Total: total})
}

// reviewItemView is the wire shape of a scheduling record.
type reviewItemView struct {
	ID              int64        `json:"id"`
	StudentID       int64        `json:"student_id"`
	PlanID          int64        `json:"plan_id"`
	Verse           string       `json:"verse"`
	Stage           entity.Stage `json:"stage"`
	EaseFactor      float64      `json:"ease_factor"`
	IntervalDays    int32        `json:"interval_days"`
	Repetitions     int32        `json:"repetitions"`
	ConfidenceScore float64      `json:"confidence_score"`
	DueAt           time.Time    `json:"due_at"`
	LastReviewedAt  *time.Time   `json:"last_reviewed_at,omitempty"`
}

func toReviewItemView(item *entity.ReviewItem) reviewItemView {
	return reviewItemView{
		ID:              item.ID,
		StudentID:       item.StudentID,
		PlanID:          item.PlanID,
		Verse:           item.Verse.Key(),
		Stage:           item.Stage(),
		EaseFactor:      item.EaseFactor,
		IntervalDays:    item.IntervalDays,
		Repetitions:     item.Repetitions,
		ConfidenceScore: item.ConfidenceScore,
		DueAt:           item.DueAt,
		LastReviewedAt:  item.LastReviewedAt,
	}
}

func bindPagination(c echo.Context, p *repository.Pagination) {
	if raw := c.QueryParam("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			p.PageNo = int32(v)
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			p.PageSize = int32(v)
		}
	}
}
