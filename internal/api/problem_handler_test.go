package api

import (
	"net/http"
	"testing"

	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFormulas(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/formulas", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[FormulasResponse](t, w)
	require.Len(t, resp.Formulas, 5)
	assert.Equal(t, "no-formula", resp.Formulas[0].ID)
	assert.Equal(t, "mixed", resp.Formulas[4].ID)
}

func TestGenerateProblem(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/problems", scenarioSettings())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[ProblemResponse](t, w)
	assert.Equal(t, 7, resp.Problem.StartValue)
	assert.Equal(t, []int{2, -3, 3, -1, -7}, resp.Problem.Sequence)
	assert.Equal(t, 1, resp.Problem.FinalAnswer)
	assert.Equal(t, fixedSeed, resp.Config.Seed)
}

func TestGenerateProblem_DrawsSeedWhenOmitted(t *testing.T) {
	router := newTestRouter(t)
	body := scenarioSettings()
	delete(body, "seed")

	w := doRequest(t, router, http.MethodPost, "/api/problems", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[ProblemResponse](t, w)
	assert.Equal(t, fixedSeed, resp.Config.Seed)
	assert.Equal(t, 1, resp.Problem.FinalAnswer)
}

func TestGenerateProblem_Errors(t *testing.T) {
	router := newTestRouter(t)

	withField := func(key string, value any) map[string]any {
		body := scenarioSettings()
		body[key] = value
		return body
	}

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "malformed json",
			body:        `{"formula_type":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "unknown field",
			body:        withField("colour", "red"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "digit count above range",
			body:        withField("digit_count", 4),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid digit_count: must be at most 3",
		},
		{
			name:        "missing formula",
			body:        withField("formula_type", ""),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid formula_type: required field",
		},
		{
			name:        "operation count above generator limit",
			body:        withField("operation_count", 1000),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid operation_count: must be between 1 and 100, got 1000",
		},
		{
			name: "unknown formula with strict matching",
			body: func() map[string]any {
				body := withField("formula_type", "abacus-magic")
				body["strict_formula"] = true
				return body
			}(),
			wantStatus:  http.StatusBadRequest,
			wantMessage: `Invalid formula_type: "abacus-magic" is not a known formula`,
		},
		{
			name:        "unsupported algorithm",
			body:        withField("algorithm", "mersenne"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: `Invalid algorithm: "mersenne" is not supported`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/problems", tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeBody[shared.ErrorResponse](t, w)
			assert.Equal(t, tc.wantMessage, resp.Error)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestGenerateProblem_UnknownFormulaFallsBack(t *testing.T) {
	router := newTestRouter(t)
	body := scenarioSettings()
	body["formula_type"] = "abacus-magic"

	w := doRequest(t, router, http.MethodPost, "/api/problems", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[ProblemResponse](t, w)
	assert.Equal(t, []int{2, -3, 3, -1, -7}, resp.Problem.Sequence)
}
