// ABOUTME: Test suite for the chat orchestrator
// ABOUTME: Verifies dispatch order, synthesis, and degraded-mode fallbacks
package ai

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

func setupChatDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.InitSchema(database))
	return database
}

func seedProject(t *testing.T, database *sql.DB) ProjectContext {
	t.Helper()
	project := &models.Project{Name: "Migration"}
	require.NoError(t, db.CreateProject(database, project))
	return ProjectContext{ProjectID: project.ID, ProjectName: project.Name}
}

func seedStakeholder(t *testing.T, database *sql.DB, project ProjectContext, name, influence, support string) *models.ProjectStakeholder {
	t.Helper()
	s := &models.Stakeholder{Name: name, InfluenceLevel: influence, SupportLevel: support}
	require.NoError(t, db.CreateStakeholder(database, s))
	assignment := &models.ProjectStakeholder{ProjectID: project.ProjectID, StakeholderID: s.ID}
	require.NoError(t, db.AssignStakeholder(database, assignment))
	return assignment
}

// fakeOllama answers every generate request with a fixed completion.
func fakeOllama(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
}

// unreachableClient points at a closed port so every request fails fast.
func unreachableClient(t *testing.T) *Client {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return NewClient(server.URL, "test-model")
}

func TestProcessQueryHelpQuestion(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)

	// Help questions never touch the service, reachable or not.
	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "how do I add a stakeholder?", project, "")

	assert.Empty(t, resp.ErrorNote, "help answers are never degraded")
	assert.Contains(t, resp.Content, "add-stakeholder")
}

func TestProcessQuerySynthesis(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	seedStakeholder(t, database, project, "Alice Chen", models.InfluenceHigh, models.SupportChampion)

	server := fakeOllama(t, "Alice Chen is your key champion.")
	defer server.Close()

	service := NewService(database, NewClient(server.URL, "test-model"))
	resp := service.ProcessQuery(context.Background(), "who are the high-influence stakeholders", project, "")

	require.Empty(t, resp.ErrorNote)
	assert.Equal(t, "Alice Chen is your key champion.", resp.Content)
	assert.Len(t, resp.Results, 1)
}

func TestProcessQueryFallbackKeepsResults(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	seedStakeholder(t, database, project, "Alice Chen", models.InfluenceHigh, models.SupportChampion)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "who are the high-influence stakeholders", project, "")

	require.NotEmpty(t, resp.ErrorNote, "expected degraded response")
	require.Len(t, resp.Results, 1, "structured results must survive generation failure")
	assert.Contains(t, resp.Content, "Alice Chen", "fallback content renders the rows")
}

func TestAnalyzeBlockersDegraded(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	seedStakeholder(t, database, project, "Risk Rita", models.InfluenceHigh, models.SupportResistant)
	seedStakeholder(t, database, project, "Neutral Ned", models.InfluenceHigh, models.SupportNeutral)
	seedStakeholder(t, database, project, "Ally Al", models.InfluenceHigh, models.SupportChampion)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "who might be a blocker on this project?", project, "")

	require.NotEmpty(t, resp.ErrorNote)
	require.Len(t, resp.Results, 2)
	assert.Contains(t, resp.Content, "Risk Rita")
	assert.Contains(t, resp.Content, "Neutral Ned")
	assert.NotContains(t, resp.Content, "Ally Al", "champions are not blockers")
}

func TestAnalyzeBlockersEmptyIsPositive(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	seedStakeholder(t, database, project, "Ally Al", models.InfluenceHigh, models.SupportChampion)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "any blockers?", project, "")

	assert.Empty(t, resp.ErrorNote, "no-blockers answer needs no service")
	assert.Contains(t, resp.Content, "No blockers")
}

func TestFindNeglectedNeverContacted(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	assignment := seedStakeholder(t, database, project, "Never Nina", models.InfluenceMedium, models.SupportNeutral)
	require.NoError(t, db.SetCommPlan(database, &models.CommunicationPlan{
		ProjectStakeholderID: assignment.ID,
		Frequency:            models.FrequencyWeekly,
	}))

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "who am I neglecting?", project, "")

	assert.Empty(t, resp.ErrorNote, "overdue detection is fully local")
	assert.Contains(t, resp.Content, "never contacted")
	assert.Len(t, resp.Results, 1)
}

func TestMeetingBriefUnknownStakeholder(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "prepare a brief for Zelda", project, "")

	assert.Empty(t, resp.ErrorNote, "not-found is a clean answer")
	assert.Contains(t, resp.Content, "couldn't find")
}

func TestMeetingBriefFallback(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)
	seedStakeholder(t, database, project, "Dana Torres", models.InfluenceHigh, models.SupportSupporter)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "prepare a brief for Dana", project, "")

	require.NotEmpty(t, resp.ErrorNote)
	assert.Contains(t, resp.Content, "Dana Torres", "fallback brief names the stakeholder")
	assert.Len(t, resp.Results, 1)
}

func TestDraftEmailNoRecipients(t *testing.T) {
	database := setupChatDB(t)
	defer database.Close()
	project := seedProject(t, database)

	service := NewService(database, unreachableClient(t))
	resp := service.ProcessQuery(context.Background(), "draft an email to the steering committee", project, "")

	assert.Contains(t, resp.Content, "No stakeholders match")
	assert.Empty(t, resp.Results)
}
