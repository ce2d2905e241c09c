// Package httpapi exposes the review engine over an echo HTTP API.
package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/usecase"
)

// Audio uploads beyond this size are rejected before transcription.
const maxAudioBytes = 10 << 20

type reviewAPI struct {
	reviews usecase.ReviewUsecase
}

// RegisterReviewAPI mounts review submission and analysis lookup routes.
func RegisterReviewAPI(g *echo.Group, reviews usecase.ReviewUsecase) {
	a := reviewAPI{reviews: reviews}
	g.POST("/reviews", a.submitReview)
	g.GET("/analyses/:submission_id", a.getAnalysis)
}

// submitReview accepts a multipart form: student_id, plan_id, verse
// ("surah:ayah"), self_confidence in [0,1], optional submission_id,
// elapsed_seconds and an optional "audio" file part.
func (a *reviewAPI) submitReview(c echo.Context) error {
	sub, err := bindReviewSubmission(c)
	if err != nil {
		return err
	}

	result, err := a.reviews.SubmitReview(c.Request().Context(), sub)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (a *reviewAPI) getAnalysis(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if submissionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "submission_id is required")
	}

	analysis, err := a.reviews.GetAnalysis(c.Request().Context(), submissionID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func bindReviewSubmission(c echo.Context) (*entity.ReviewSubmission, error) {
	studentID, err := strconv.ParseInt(c.FormValue("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "student_id must be a positive integer")
	}
	planID, err := strconv.ParseInt(c.FormValue("plan_id"), 10, 64)
	if err != nil || planID <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "plan_id must be a positive integer")
	}
	verse, err := entity.ParseVerseRef(c.FormValue("verse"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "verse must be in surah:ayah form")
	}
	confidence, err := strconv.ParseFloat(c.FormValue("self_confidence"), 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "self_confidence must be a number in [0,1]")
	}

	sub := &entity.ReviewSubmission{
		ID:             c.FormValue("submission_id"),
		StudentID:      studentID,
		PlanID:         planID,
		Verse:          verse,
		SelfConfidence: confidence,
	}
	if raw := c.FormValue("elapsed_seconds"); raw != "" {
		elapsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || elapsed < 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "elapsed_seconds must be a non-negative integer")
		}
		sub.ElapsedSeconds = int32(elapsed)
	}

	file, err := c.FormFile("audio")
	if err != nil {
		// Audio is optional; a missing part means self-report only.
		return sub, nil
	}
	if file.Size > maxAudioBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "audio exceeds 10 MiB")
	}
	f, err := file.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "open audio part: "+err.Error())
	}
	defer f.Close()

	audio, err := io.ReadAll(io.LimitReader(f, maxAudioBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "read audio part: "+err.Error())
	}
	if len(audio) > maxAudioBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "audio exceeds 10 MiB")
	}
	sub.Audio = audio
	return sub, nil
}
