package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubInsightAnalyzer stands in for the insight service so the analyze
// endpoint can be exercised without a database.
type stubInsightAnalyzer struct {
	created bool
	err     error
}

func (s *stubInsightAnalyzer) Analyze(ctx context.Context, userID, eventID primitive.ObjectID) (*models.InsightReport, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return &models.InsightReport{
		EventID:  eventID,
		Insights: []models.Insight{},
		Summary:  "Based on the analysis of 0 messages, no specific topics of interest were identified.",
	}, s.created, nil
}

func (s *stubInsightAnalyzer) GetReport(ctx context.Context, eventID primitive.ObjectID) (*models.InsightReport, error) {
	return &models.InsightReport{EventID: eventID, Insights: []models.Insight{}}, nil
}

func newAnalyzeTestApp(stub *stubInsightAnalyzer) *fiber.App {
	h := &MessageHandler{insightService: stub}

	app := fiber.New()
	app.Post("/api/messages/analyze/:eventId", func(c *fiber.Ctx) error {
		c.Locals("user_id", primitive.NewObjectID().Hex())
		return h.Analyze(c)
	})
	return app
}

func analyzeRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/messages/analyze/"+primitive.NewObjectID().Hex(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func TestAnalyzeCreatedReportReturns201(t *testing.T) {
	app := newAnalyzeTestApp(&stubInsightAnalyzer{created: true})

	resp := analyzeRequest(t, app)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestAnalyzeUpdatedReportReturns200(t *testing.T) {
	app := newAnalyzeTestApp(&stubInsightAnalyzer{created: false})

	resp := analyzeRequest(t, app)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestAnalyzeRejectsNonHost(t *testing.T) {
	app := newAnalyzeTestApp(&stubInsightAnalyzer{err: services.ErrNotEventHost})

	resp := analyzeRequest(t, app)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Only the event host can analyze messages") {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestAnalyzeUnknownEventReturns404(t *testing.T) {
	app := newAnalyzeTestApp(&stubInsightAnalyzer{err: services.ErrEventNotFound})

	resp := analyzeRequest(t, app)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
