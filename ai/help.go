// ABOUTME: Canned how-to answers for the chat assistant
// ABOUTME: Matches "how do I" phrasing against an ordered topic table
package ai

import (
	"regexp"
)

// helpIntentPatterns recognize that the user is asking how to use the tool
// rather than asking about their data. No service call happens on this path.
var helpIntentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhow do i\b`),
	regexp.MustCompile(`(?i)\bhow to\b`),
	regexp.MustCompile(`(?i)\bhow can i\b`),
	regexp.MustCompile(`(?i)\bhelp (?:with|me)\b`),
}

// helpTopic pairs a topic pattern with its pre-written answer. Walked in
// order; first match wins.
type helpTopic struct {
	pattern *regexp.Regexp
	answer  string
}

var helpTopics = []helpTopic{
	{
		regexp.MustCompile(`(?i)add(?:ing)? (?:a )?stakeholder`),
		"To add a stakeholder, run `stakeholdr pm add-stakeholder --name \"...\"` with optional --title, --department, --email, --influence, and --support flags. Then assign them to a project with `stakeholdr pm assign`.",
	},
	{
		regexp.MustCompile(`(?i)\bimport`),
		"To import stakeholders, run `stakeholdr import --project \"...\" --file stakeholders.csv`. The CSV uses the same columns as the export: Name, Job Title, Department, Email, Slack, Influence Level, Support Level, Project Function, Notes. Existing names are assigned, not duplicated.",
	},
	{
		regexp.MustCompile(`(?i)\bexport`),
		"To export a project, run `stakeholdr export json --project \"...\"` for a full JSON snapshot, or `stakeholdr export csv` for stakeholder, RACI, and comm-plan spreadsheets.",
	},
	{
		regexp.MustCompile(`(?i)\braci\b`),
		"RACI roles are set per stakeholder and workstream: `stakeholdr pm raci --project \"...\" --stakeholder \"...\" --workstream \"...\" --role R`. Roles are R (Responsible), A (Accountable), C (Consulted), I (Informed). Setting a role again overwrites the old one. Use `stakeholdr pm raci-gaps` to find workstreams missing an R or A.",
	},
	{
		regexp.MustCompile(`(?i)comm(?:unication)?[ -]?plan`),
		"Set a communication plan with `stakeholdr pm comm-plan --project \"...\" --stakeholder \"...\" --channel email --frequency weekly`. Frequencies: daily, weekly, biweekly, monthly, quarterly, as-needed. Logging an engagement updates the plan's last-contact date automatically.",
	},
	{
		regexp.MustCompile(`(?i)\btags?\b`),
		"Create tags with `stakeholdr pm add-tag --name \"...\"` and attach them with `stakeholdr pm tag --stakeholder \"...\" --tag \"...\"`. Tags are labels shared across all projects.",
	},
	{
		regexp.MustCompile(`(?i)\bfilter`),
		"Filter stakeholder lists with flags on `stakeholdr pm list-stakeholders`: --query matches name, department, or support level as a substring.",
	},
	{
		regexp.MustCompile(`(?i)bulk|multiple`),
		"For bulk changes, import a CSV with the updated rows: `stakeholdr import --project \"...\" --file updated.csv`. Rows matching existing stakeholder names update the assignment rather than creating duplicates.",
	},
	{
		regexp.MustCompile(`(?i)engagement|log (?:a )?(?:meeting|call|interaction)`),
		"Log an engagement with `stakeholdr pm log --project \"...\" --stakeholder \"...\" --type meeting --summary \"...\" --sentiment positive`. Types: meeting, email, call, decision, note.",
	},
	{
		regexp.MustCompile(`(?i)relationship|network|org ?chart`),
		"Record relationships with `stakeholdr pm relate --from \"...\" --to \"...\" --type reports_to --strength strong`. Then render them with `stakeholdr viz graph network` or `stakeholdr viz graph orgchart`.",
	},
}

const helpFallback = `I can answer questions about your stakeholder data. Try asking:

- Who is responsible for design?
- List all high-influence stakeholders
- Show champions in this project
- Who should I email weekly?
- Prepare a brief for Dana
- Who am I neglecting?`

// isHelpQuestion reports whether the text asks how to use the tool.
func isHelpQuestion(text string) bool {
	for _, p := range helpIntentPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// helpAnswer returns the canned answer for the first matching topic, or the
// generic example list when nothing matches.
func helpAnswer(text string) string {
	for _, t := range helpTopics {
		if t.pattern.MatchString(text) {
			return t.answer
		}
	}
	return helpFallback
}
