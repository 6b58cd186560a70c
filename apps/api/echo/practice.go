package echoapi

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/radianlabs/precalc/core/practice"
)

type practiceApi struct{}

func registerPracticeAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	api := practiceApi{}

	pg := g.Group("/practice", jwt)
	pg.GET("/evaluate", api.evaluate)
	pg.GET("/parity", api.parity)
	pg.GET("/inverse", api.inverse)
	pg.GET("/review/values", api.valueTable)
	pg.POST("/review/values", api.checkValueTable)
	pg.POST("/review/signs", api.checkQuadrantSigns)
}

// problemRNG gives a time-seeded source, or a fixed one when the client
// passes ?seed= (reproducible problems for review sessions).
func problemRNG(ctx echo.Context) (*rand.Rand, error) {
	if s := ctx.QueryParam("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "seed must be a number")
		}
		return rand.New(rand.NewSource(seed)), nil
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())), nil
}

func (api *practiceApi) evaluate(ctx echo.Context) error {
	rng, err := problemRNG(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, practice.NewEvaluationProblem(rng))
}

func (api *practiceApi) parity(ctx echo.Context) error {
	rng, err := problemRNG(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, practice.NewParityProblem(rng))
}

func (api *practiceApi) inverse(ctx echo.Context) error {
	rng, err := problemRNG(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, practice.NewInverseProblem(rng))
}

// valueTable returns the blank skeleton of the special-values table:
// the angle rows and function columns, without the expected values.
func (api *practiceApi) valueTable(ctx echo.Context) error {
	angles := make([]string, 0, len(practice.SpecialValueRows))
	for _, row := range practice.SpecialValueRows {
		angles = append(angles, row.Angle)
	}
	return ctx.JSON(http.StatusOK, ValueTableResponse{
		Functions: practice.FunctionNames,
		Angles:    angles,
	})
}

func (api *practiceApi) checkValueTable(ctx echo.Context) error {
	var data ValueTableSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ValueTableSubmission")
	}
	correct := practice.CheckValueTable(data.Answers)
	return ctx.JSON(http.StatusOK, AnswerResponse{Correct: correct})
}

func (api *practiceApi) checkQuadrantSigns(ctx echo.Context) error {
	var data QuadrantSignsSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuadrantSignsSubmission")
	}
	review := practice.CheckQuadrantSigns(data.Labels, data.Assignments)
	return ctx.JSON(http.StatusOK, review)
}

type (
	ValueTableResponse struct {
		Functions []string `json:"functions"`
		Angles    []string `json:"angles"`
	}

	ValueTableSubmission struct {
		// Answers are keyed "<angle>:<function>", e.g. "π/6:sin".
		Answers map[string]string `json:"answers"`
	}

	QuadrantSignsSubmission struct {
		Labels      map[string]string                  `json:"labels"`
		Assignments map[string]practice.SignAssignment `json:"assignments"`
	}
)
