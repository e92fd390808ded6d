package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/globalvillage/api/internal/worldatlas"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Global Village API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Country explorer and Guess The Flag quiz backend.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]struct {
		Status string `json:"status"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// GET /api/continents
	getContinents, _ := r.NewOperationContext(http.MethodGet, "/api/continents")
	getContinents.SetSummary("List continents")
	getContinents.SetDescription("Returns the six continents used by the region filter.")
	getContinents.AddRespStructure(struct {
		Continents []string `json:"continents"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getContinents)

	// GET /api/countries
	listCountries, _ := r.NewOperationContext(http.MethodGet, "/api/countries")
	listCountries.SetSummary("List country cards")
	listCountries.SetDescription("Returns a page of country cards, optionally filtered by region and name query.")
	listCountries.AddReqStructure(struct {
		Region   string `query:"region"`
		Q        string `query:"q"`
		Page     int    `query:"page"`
		PageSize int    `query:"page_size"`
	}{})
	listCountries.AddRespStructure(CountryListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listCountries.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(listCountries)

	// GET /api/countries/{name}
	getCountry, _ := r.NewOperationContext(http.MethodGet, "/api/countries/{name}")
	getCountry.SetSummary("Country detail")
	getCountry.SetDescription("Returns one country card. Unknown names yield a card with placeholder values.")
	getCountry.AddRespStructure(worldatlas.Card{}, openapi.WithHTTPStatus(http.StatusOK))
	getCountry.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(getCountry)

	// GET /api/cultures
	listCultures, _ := r.NewOperationContext(http.MethodGet, "/api/cultures")
	listCultures.SetSummary("List culture cards")
	listCultures.SetDescription("Returns the curated culture dataset, optionally filtered by continent.")
	listCultures.AddReqStructure(struct {
		Continent string `query:"continent"`
	}{})
	listCultures.AddRespStructure(struct {
		Total int                      `json:"total"`
		Items []worldatlas.CultureCard `json:"items"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listCultures)

	// GET /api/cultures/{name}
	getCulture, _ := r.NewOperationContext(http.MethodGet, "/api/cultures/{name}")
	getCulture.SetSummary("Culture card detail")
	getCulture.AddRespStructure(worldatlas.CultureCard{}, openapi.WithHTTPStatus(http.StatusOK))
	getCulture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getCulture)

	// POST /api/cultures/register
	registerCultures, _ := r.NewOperationContext(http.MethodPost, "/api/cultures/register")
	registerCultures.SetSummary("Register legacy culture cards")
	registerCultures.SetDescription("Adds a batch of legacy-shaped cards. Duplicates by name and continent are skipped.")
	registerCultures.AddReqStructure(RegisterRequest{})
	registerCultures.AddRespStructure(RegisterResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	registerCultures.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(registerCultures)

	// POST /api/quiz
	startQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/quiz")
	startQuiz.SetSummary("Start a quiz")
	startQuiz.SetDescription("Starts a ten question Guess The Flag session and returns its token.")
	startQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	startQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	startQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(startQuiz)

	// GET /api/quiz/{token}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/quiz/{token}")
	getQuiz.SetSummary("Quiz session state")
	getQuiz.SetDescription("Returns the session snapshot. Finished sessions include the answer log and high score flag.")
	getQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuiz)

	// POST /api/quiz/{token}/answer
	answerQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/quiz/{token}/answer")
	answerQuiz.SetSummary("Answer the current question")
	answerQuiz.SetDescription("Accepts exactly one answer per question. Further answers return a conflict.")
	answerQuiz.AddReqStructure(struct {
		Choice string `json:"choice"`
	}{})
	answerQuiz.AddRespStructure(struct {
		Correct     bool   `json:"correct"`
		CorrectName string `json:"correctName"`
		Score       int    `json:"score"`
		Streak      int    `json:"streak"`
		Last        bool   `json:"last"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	answerQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	answerQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(answerQuiz)

	// POST /api/quiz/{token}/next
	nextQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/quiz/{token}/next")
	nextQuiz.SetSummary("Advance to the next question")
	nextQuiz.SetDescription("Moves to the next question, or finishes the session after the last one.")
	nextQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	nextQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	nextQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(nextQuiz)

	// POST /api/quiz/{token}/restart
	restartQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/quiz/{token}/restart")
	restartQuiz.SetSummary("Restart a quiz")
	restartQuiz.SetDescription("Resets score, streak, and used flags, and asks a fresh first question.")
	restartQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	restartQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(restartQuiz)

	// GET /api/quiz/{token}/events
	quizEvents, _ := r.NewOperationContext(http.MethodGet, "/api/quiz/{token}/events")
	quizEvents.SetSummary("SSE event stream")
	quizEvents.SetDescription("Server-Sent Events stream of answer and finish events for one session.")
	quizEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	quizEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(quizEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
