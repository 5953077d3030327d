// ABOUTME: Intent classification for free-text stakeholder questions
// ABOUTME: Ordered regex dispatch table producing parameterized queries
package ai

import (
	"regexp"
	"strings"
)

// Intent types.
const (
	IntentRACI          = "raci"
	IntentCommunication = "communication"
	IntentInfluence     = "influence"
	IntentDepartment    = "department"
	IntentGeneral       = "general"
)

// Intent is a classified question with an optional parameterized query.
// Query text never contains user input; fragments travel through Params.
type Intent struct {
	Type           string
	Filters        map[string]string
	Query          string
	Params         []any
	NeedsSynthesis bool
}

// matcher pairs one compiled pattern with the intent it produces. The table
// is walked in order and the first match wins, which makes the tie-break
// order between overlapping phrasings explicit and testable.
type matcher struct {
	pattern *regexp.Regexp
	build   func(match []string) Intent
}

const raciQuery = `
	SELECT s.name, s.job_title, s.department, w.name AS workstream, r.role
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	JOIN raci_assignments r ON ps.id = r.project_stakeholder_id
	JOIN workstreams w ON r.workstream_id = w.id
	WHERE r.role = ?
	AND LOWER(w.name) LIKE ?`

const commQuery = `
	SELECT s.name, s.job_title, s.email, c.channel, c.frequency
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	JOIN comm_plans c ON ps.id = c.project_stakeholder_id
	WHERE c.frequency = ?`

const influenceQuery = `
	SELECT s.name, s.job_title, s.department, s.influence_level, s.support_level
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	WHERE s.influence_level = ?`

const supportQuery = `
	SELECT s.name, s.job_title, s.department, s.influence_level, s.support_level
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	WHERE s.support_level = ?`

const departmentQuery = `
	SELECT s.name, s.job_title, s.department
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	WHERE LOWER(s.department) LIKE ?`

const listAllQuery = `
	SELECT s.name, s.job_title, s.department, s.influence_level, s.support_level
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id`

func raciIntent(role string) func(match []string) Intent {
	return func(match []string) Intent {
		workstream := strings.TrimSpace(match[1])
		return Intent{
			Type:           IntentRACI,
			Filters:        map[string]string{"role": role, "workstream": workstream},
			Query:          raciQuery,
			Params:         []any{role, "%" + strings.ToLower(workstream) + "%"},
			NeedsSynthesis: true,
		}
	}
}

func commIntent(frequency string) Intent {
	return Intent{
		Type:           IntentCommunication,
		Filters:        map[string]string{"frequency": frequency},
		Query:          commQuery,
		Params:         []any{frequency},
		NeedsSynthesis: true,
	}
}

// matchers is the priority-ordered dispatch table. RACI role phrasings come
// before communication and influence phrasings so a question like "who should
// be informed about design" lands on RACI rather than a broader category.
var matchers = []matcher{
	{
		regexp.MustCompile(`(?i)who(?:'s| is) responsible (?:for )?(.+?)(?:\?|$)`),
		raciIntent("R"),
	},
	{
		regexp.MustCompile(`(?i)who(?:'s| is) accountable (?:for )?(.+?)(?:\?|$)`),
		raciIntent("A"),
	},
	{
		regexp.MustCompile(`(?i)who (?:should be |is )consulted (?:for |on )?(.+?)(?:\?|$)`),
		raciIntent("C"),
	},
	{
		regexp.MustCompile(`(?i)who (?:should be |is |needs to be )informed (?:about |for )?(.+?)(?:\?|$)`),
		raciIntent("I"),
	},
	{
		regexp.MustCompile(`(?i)(?:who|list|show)(?: all)? stakeholders (?:I |we )?(?:need to )?email weekly`),
		func([]string) Intent { return commIntent("weekly") },
	},
	{
		regexp.MustCompile(`(?i)(?:who|list|show)(?: all)? stakeholders (?:I |we )?(?:need to )?email monthly`),
		func([]string) Intent { return commIntent("monthly") },
	},
	{
		regexp.MustCompile(`(?i)(?:who|list|show)(?: all)? stakeholders (?:with |I |we )(?:need to )?(?:communicate |contact |email |update )?(daily|weekly|biweekly|monthly|quarterly)`),
		func(match []string) Intent { return commIntent(strings.ToLower(match[1])) },
	},
	{
		regexp.MustCompile(`(?i)(?:who are |list |show )(?:the )?(?:high[ -]?influence|key|important) stakeholders`),
		func([]string) Intent {
			return Intent{
				Type:           IntentInfluence,
				Filters:        map[string]string{"influence_level": "high"},
				Query:          influenceQuery,
				Params:         []any{"high"},
				NeedsSynthesis: true,
			}
		},
	},
	{
		regexp.MustCompile(`(?i)(?:who are |list |show )(?:the )?champions`),
		func([]string) Intent {
			return Intent{
				Type:           IntentInfluence,
				Filters:        map[string]string{"support_level": "champion"},
				Query:          supportQuery,
				Params:         []any{"champion"},
				NeedsSynthesis: true,
			}
		},
	},
	{
		regexp.MustCompile(`(?i)(?:who are |list |show )(?:the )?(?:resistant|resistors|blockers)`),
		func([]string) Intent {
			return Intent{
				Type:           IntentInfluence,
				Filters:        map[string]string{"support_level": "resistant"},
				Query:          supportQuery,
				Params:         []any{"resistant"},
				NeedsSynthesis: true,
			}
		},
	},
	{
		regexp.MustCompile(`(?i)(?:who is |list |show |stakeholders )(?:in |from )(?:the )?(.+?) (?:department|team)`),
		func(match []string) Intent {
			department := strings.TrimSpace(match[1])
			return Intent{
				Type:           IntentDepartment,
				Filters:        map[string]string{"department": department},
				Query:          departmentQuery,
				Params:         []any{"%" + strings.ToLower(department) + "%"},
				NeedsSynthesis: true,
			}
		},
	},
	{
		regexp.MustCompile(`(?i)(?:list|show)(?: all)? stakeholders`),
		func([]string) Intent {
			return Intent{
				Type:           IntentGeneral,
				Filters:        map[string]string{},
				Query:          listAllQuery,
				NeedsSynthesis: true,
			}
		},
	},
}

// ParseIntent classifies a question by walking the matcher table once.
// Unmatched or blank input yields a general intent with no query; the caller
// falls back to free-form synthesis.
func ParseIntent(question string) Intent {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return Intent{Type: IntentGeneral, Filters: map[string]string{}, NeedsSynthesis: true}
	}

	for _, m := range matchers {
		if match := m.pattern.FindStringSubmatch(trimmed); match != nil {
			return m.build(match)
		}
	}

	return Intent{Type: IntentGeneral, Filters: map[string]string{}, NeedsSynthesis: true}
}
