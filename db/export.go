// ABOUTME: Project export and import
// ABOUTME: JSON snapshots round-trip entity counts; CSV covers spreadsheets
package db

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// ProjectSnapshot is the JSON export shape for one project. Importing a
// snapshot recreates the same stakeholder, workstream, and RACI counts.
type ProjectSnapshot struct {
	ExportedAt   time.Time                    `json:"exported_at"`
	Project      models.Project               `json:"project"`
	Stakeholders []models.AssignedStakeholder `json:"stakeholders"`
	Workstreams  []models.Workstream          `json:"workstreams"`
	RACI         []models.RACIRow             `json:"raci_assignments"`
	CommPlans    []models.CommPlanRow         `json:"comm_plans"`
}

func ExportProject(db *sql.DB, projectID uuid.UUID) (*ProjectSnapshot, error) {
	project, err := GetProject(db, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	stakeholders, err := ListProjectStakeholders(db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to export stakeholders: %w", err)
	}

	workstreams, err := ListWorkstreams(db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to export workstreams: %w", err)
	}

	raci, err := ListRACIByProject(db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to export raci assignments: %w", err)
	}

	commPlans, err := ListCommPlansByProject(db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to export comm plans: %w", err)
	}

	return &ProjectSnapshot{
		ExportedAt:   time.Now(),
		Project:      *project,
		Stakeholders: stakeholders,
		Workstreams:  workstreams,
		RACI:         raci,
		CommPlans:    commPlans,
	}, nil
}

func WriteProjectJSON(db *sql.DB, projectID uuid.UUID, w io.Writer) error {
	snapshot, err := ExportProject(db, projectID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

// ImportProject recreates a snapshot as a new project. Stakeholders are
// matched by name against existing rows so re-importing does not duplicate
// people; workstreams and RACI rows are always recreated.
func ImportProject(db *sql.DB, snapshot *ProjectSnapshot) (*models.Project, error) {
	project := &models.Project{
		Name:        snapshot.Project.Name,
		Description: snapshot.Project.Description,
		Status:      snapshot.Project.Status,
	}
	if err := CreateProject(db, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Old assignment id -> new assignment id, for rebinding RACI and plans
	assignmentIDs := make(map[uuid.UUID]uuid.UUID)

	for _, s := range snapshot.Stakeholders {
		stakeholderID, err := ensureStakeholder(db, s.Stakeholder)
		if err != nil {
			return nil, err
		}

		assignment := &models.ProjectStakeholder{
			ProjectID:       project.ID,
			StakeholderID:   stakeholderID,
			ProjectFunction: s.ProjectFunction,
		}
		if err := AssignStakeholder(db, assignment); err != nil {
			return nil, fmt.Errorf("failed to assign %s: %w", s.Name, err)
		}
		assignmentIDs[s.ProjectStakeholderID] = assignment.ID
	}

	// Old workstream id -> new workstream id
	workstreamIDs := make(map[uuid.UUID]uuid.UUID)
	for _, ws := range snapshot.Workstreams {
		created := &models.Workstream{
			ProjectID:   project.ID,
			Name:        ws.Name,
			Description: ws.Description,
		}
		if err := CreateWorkstream(db, created); err != nil {
			return nil, fmt.Errorf("failed to create workstream %s: %w", ws.Name, err)
		}
		workstreamIDs[ws.ID] = created.ID
	}

	for _, r := range snapshot.RACI {
		psID, ok := assignmentIDs[r.ProjectStakeholderID]
		if !ok {
			continue
		}
		wsID, ok := workstreamIDs[r.WorkstreamID]
		if !ok {
			continue
		}
		if err := SetRACIRole(db, psID, wsID, r.Role); err != nil {
			return nil, fmt.Errorf("failed to set raci role: %w", err)
		}
	}

	for _, p := range snapshot.CommPlans {
		psID, ok := assignmentIDs[p.ProjectStakeholderID]
		if !ok {
			continue
		}
		plan := &models.CommunicationPlan{
			ProjectStakeholderID: psID,
			Channel:              p.Channel,
			Frequency:            p.Frequency,
			Notes:                p.Notes,
			LastContactDate:      p.LastContactDate,
		}
		if err := SetCommPlan(db, plan); err != nil {
			return nil, fmt.Errorf("failed to set comm plan: %w", err)
		}
	}

	return project, nil
}

func ReadProjectJSON(db *sql.DB, r io.Reader) (*models.Project, error) {
	var snapshot ProjectSnapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return ImportProject(db, &snapshot)
}

func ensureStakeholder(db *sql.DB, s models.Stakeholder) (uuid.UUID, error) {
	row := db.QueryRow(`SELECT id FROM stakeholders WHERE name = ?`, s.Name)
	var idStr string
	err := row.Scan(&idStr)
	if err == nil {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return uuid.Nil, fmt.Errorf("failed to parse stakeholder ID: %w", parseErr)
		}
		return id, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, err
	}

	created := models.Stakeholder{
		Name:           s.Name,
		JobTitle:       s.JobTitle,
		Department:     s.Department,
		Email:          s.Email,
		Slack:          s.Slack,
		InfluenceLevel: s.InfluenceLevel,
		SupportLevel:   s.SupportLevel,
		Notes:          s.Notes,
	}
	if err := CreateStakeholder(db, &created); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create stakeholder %s: %w", s.Name, err)
	}
	return created.ID, nil
}

// WriteStakeholdersCSV writes a project's stakeholders with their assignment
// function.
func WriteStakeholdersCSV(db *sql.DB, projectID uuid.UUID, w io.Writer) error {
	stakeholders, err := ListProjectStakeholders(db, projectID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Job Title", "Department", "Email", "Slack", "Influence Level", "Support Level", "Project Function", "Notes"}); err != nil {
		return err
	}
	for _, s := range stakeholders {
		record := []string{s.Name, s.JobTitle, s.Department, s.Email, s.Slack, s.InfluenceLevel, s.SupportLevel, s.ProjectFunction, s.Notes}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteRACICSV(db *sql.DB, projectID uuid.UUID, w io.Writer) error {
	raci, err := ListRACIByProject(db, projectID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Stakeholder", "Workstream", "Role"}); err != nil {
		return err
	}
	for _, r := range raci {
		if err := cw.Write([]string{r.StakeholderName, r.WorkstreamName, r.Role}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteCommPlansCSV(db *sql.DB, projectID uuid.UUID, w io.Writer) error {
	plans, err := ListCommPlansByProject(db, projectID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Stakeholder", "Channel", "Frequency", "Notes"}); err != nil {
		return err
	}
	for _, p := range plans {
		if err := cw.Write([]string{p.StakeholderName, p.Channel, p.Frequency, p.Notes}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportStakeholdersCSV creates and assigns stakeholders from a CSV in the
// export column order. Rows whose name already exists are assigned, not
// duplicated.
func ImportStakeholdersCSV(db *sql.DB, projectID uuid.UUID, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return 0, nil
	}

	imported := 0
	for _, record := range records[1:] {
		if len(record) < 9 || record[0] == "" {
			continue
		}

		stakeholderID, err := ensureStakeholder(db, models.Stakeholder{
			Name:           record[0],
			JobTitle:       record[1],
			Department:     record[2],
			Email:          record[3],
			Slack:          record[4],
			InfluenceLevel: record[5],
			SupportLevel:   record[6],
			Notes:          record[8],
		})
		if err != nil {
			return imported, err
		}

		existing, err := GetAssignmentByPair(db, projectID, stakeholderID)
		if err != nil {
			return imported, err
		}
		if existing == nil {
			assignment := &models.ProjectStakeholder{
				ProjectID:       projectID,
				StakeholderID:   stakeholderID,
				ProjectFunction: record[7],
			}
			if err := AssignStakeholder(db, assignment); err != nil {
				return imported, fmt.Errorf("failed to assign %s: %w", record[0], err)
			}
		}
		imported++
	}

	return imported, nil
}
