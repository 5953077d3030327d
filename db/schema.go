// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'planning', 'archived')),
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);

CREATE TABLE IF NOT EXISTS stakeholders (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	job_title TEXT,
	department TEXT,
	email TEXT,
	slack TEXT,
	influence_level TEXT NOT NULL DEFAULT 'medium' CHECK(influence_level IN ('high', 'medium', 'low')),
	support_level TEXT NOT NULL DEFAULT 'neutral' CHECK(support_level IN ('champion', 'supporter', 'neutral', 'resistant')),
	notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_stakeholders_name ON stakeholders(name);
CREATE INDEX IF NOT EXISTS idx_stakeholders_department ON stakeholders(department);

CREATE TABLE IF NOT EXISTS workstreams (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

CREATE INDEX IF NOT EXISTS idx_workstreams_project_id ON workstreams(project_id);

CREATE TABLE IF NOT EXISTS project_stakeholders (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	stakeholder_id TEXT NOT NULL,
	project_function TEXT,
	FOREIGN KEY (project_id) REFERENCES projects(id),
	FOREIGN KEY (stakeholder_id) REFERENCES stakeholders(id),
	UNIQUE(project_id, stakeholder_id)
);

CREATE INDEX IF NOT EXISTS idx_project_stakeholders_project ON project_stakeholders(project_id);
CREATE INDEX IF NOT EXISTS idx_project_stakeholders_stakeholder ON project_stakeholders(stakeholder_id);

CREATE TABLE IF NOT EXISTS raci_assignments (
	id TEXT PRIMARY KEY,
	project_stakeholder_id TEXT NOT NULL,
	workstream_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('R', 'A', 'C', 'I')),
	FOREIGN KEY (project_stakeholder_id) REFERENCES project_stakeholders(id),
	FOREIGN KEY (workstream_id) REFERENCES workstreams(id),
	UNIQUE(project_stakeholder_id, workstream_id)
);

CREATE INDEX IF NOT EXISTS idx_raci_workstream ON raci_assignments(workstream_id);

CREATE TABLE IF NOT EXISTS comm_plans (
	id TEXT PRIMARY KEY,
	project_stakeholder_id TEXT NOT NULL UNIQUE,
	channel TEXT NOT NULL DEFAULT 'email' CHECK(channel IN ('email', 'slack', 'jira', 'briefing', 'meeting', 'other')),
	frequency TEXT NOT NULL DEFAULT 'weekly' CHECK(frequency IN ('daily', 'weekly', 'biweekly', 'monthly', 'quarterly', 'as-needed')),
	notes TEXT,
	last_contact_date DATETIME,
	FOREIGN KEY (project_stakeholder_id) REFERENCES project_stakeholders(id)
);

CREATE TABLE IF NOT EXISTS engagement_logs (
	id TEXT PRIMARY KEY,
	project_stakeholder_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('meeting', 'email', 'call', 'decision', 'note')),
	summary TEXT,
	sentiment TEXT NOT NULL DEFAULT 'neutral' CHECK(sentiment IN ('positive', 'neutral', 'negative')),
	created_at DATETIME NOT NULL,
	FOREIGN KEY (project_stakeholder_id) REFERENCES project_stakeholders(id)
);

CREATE INDEX IF NOT EXISTS idx_engagement_logs_assignment ON engagement_logs(project_stakeholder_id);
CREATE INDEX IF NOT EXISTS idx_engagement_logs_date ON engagement_logs(date DESC);

CREATE TABLE IF NOT EXISTS stakeholder_history (
	id TEXT PRIMARY KEY,
	stakeholder_id TEXT NOT NULL,
	field TEXT NOT NULL CHECK(field IN ('influence_level', 'support_level')),
	old_value TEXT NOT NULL,
	new_value TEXT NOT NULL,
	changed_at DATETIME NOT NULL,
	notes TEXT,
	FOREIGN KEY (stakeholder_id) REFERENCES stakeholders(id)
);

CREATE INDEX IF NOT EXISTS idx_stakeholder_history_stakeholder ON stakeholder_history(stakeholder_id);
CREATE INDEX IF NOT EXISTS idx_stakeholder_history_changed ON stakeholder_history(changed_at DESC);

CREATE TABLE IF NOT EXISTS tags (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	color TEXT NOT NULL DEFAULT '#6366f1'
);

CREATE TABLE IF NOT EXISTS stakeholder_tags (
	stakeholder_id TEXT NOT NULL,
	tag_id TEXT NOT NULL,
	PRIMARY KEY (stakeholder_id, tag_id),
	FOREIGN KEY (stakeholder_id) REFERENCES stakeholders(id),
	FOREIGN KEY (tag_id) REFERENCES tags(id)
);

CREATE TABLE IF NOT EXISTS relationships (
	id TEXT PRIMARY KEY,
	from_stakeholder_id TEXT NOT NULL,
	to_stakeholder_id TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('reports_to', 'influences', 'allied_with', 'conflicts_with')),
	strength TEXT NOT NULL DEFAULT 'moderate' CHECK(strength IN ('strong', 'moderate', 'weak')),
	notes TEXT,
	FOREIGN KEY (from_stakeholder_id) REFERENCES stakeholders(id),
	FOREIGN KEY (to_stakeholder_id) REFERENCES stakeholders(id)
);

CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships(from_stakeholder_id);
CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(to_stakeholder_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
