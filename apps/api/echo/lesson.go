package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/practice"
)

type lessonApi struct {
	svc *lesson.Service
}

func registerLessonAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *lesson.Service) {
	api := lessonApi{svc: svc}

	lg := g.Group("/lessons", jwt)
	lg.GET("", api.index)
	lg.POST("/answers", api.checkAnswer)
	lg.GET("/*", api.retrieve)
}

// index serves the course catalog, optionally filtered by ?chapter= and
// ?search= (case-insensitive title/summary match).
func (api *lessonApi) index(ctx echo.Context) error {
	idx, err := api.svc.Index()
	if err != nil {
		return errors.Wrap(err, "loading lesson index")
	}

	chapterParam := ctx.QueryParam("chapter")
	term := ctx.QueryParam("search")
	if chapterParam == "" && term == "" {
		return ctx.JSON(http.StatusOK, idx)
	}

	var chapter int
	if chapterParam != "" {
		chapter, err = strconv.Atoi(chapterParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "chapter must be a number")
		}
	}
	idx.Lessons = idx.Filter(chapter, term)
	return ctx.JSON(http.StatusOK, idx)
}

// retrieve serves the validated Document for a lesson path. Unknown paths
// and unreadable files both come back as 404; malformed documents degrade to
// whatever the validator salvaged.
func (api *lessonApi) retrieve(ctx echo.Context) error {
	doc, err := api.svc.Get(ctx.Param("*"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "loading lesson")
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *lessonApi) checkAnswer(ctx echo.Context) error {
	var data AnswerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.svc.FindQuestion(data.Path, data.QuestionID)
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding question")
	}

	correct := practice.IsCoordinateAcceptable(data.X, data.Y, q.AcceptableAnswers)
	return ctx.JSON(http.StatusOK, AnswerResponse{Correct: correct})
}
