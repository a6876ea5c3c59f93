// Package models defines the core domain types shared across the application.
package models

import "time"

// Tier identifies the strictness level a rule belongs to.
// Tiers are ordered C < B < A; a trade must clear the mandatory rules of a
// tier before the next one is considered.
type Tier string

const (
	TierC Tier = "C"
	TierB Tier = "B"
	TierA Tier = "A"
)

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	return t == TierC || t == TierB || t == TierA
}

// Grade is the letter grade derived from a trade's rule compliance.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

// Grades lists all grades from best to worst.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeF}

// Rule is a single playbook criterion. Tier and Mandatory are fixed at
// creation time; a rule belongs to exactly one tier.
type Rule struct {
	ID          string
	Tier        Tier
	Mandatory   bool
	Description string
}

// Playbook is a named, ordered collection of rules. Order matters only for
// display, never for grading.
type Playbook struct {
	ID        string
	Name      string
	Rules     []Rule
	CreatedAt time.Time
}

// Snapshot freezes the playbook's current rule set. Trades hold snapshots so
// later playbook edits never change a historical grade.
func (p *Playbook) Snapshot() PlaybookSnapshot {
	rules := make([]Rule, len(p.Rules))
	copy(rules, p.Rules)
	return PlaybookSnapshot{
		PlaybookID: p.ID,
		Name:       p.Name,
		Rules:      rules,
	}
}

// PlaybookSnapshot is the frozen rule set a trade was graded against.
type PlaybookSnapshot struct {
	PlaybookID string
	Name       string
	Rules      []Rule
}

// Rule returns the snapshot rule with the given ID.
func (s PlaybookSnapshot) Rule(id string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// ComplianceRecord captures which snapshot rules a trade satisfied. A rule
// absent from Flags counts as not satisfied, never as unknown.
type ComplianceRecord struct {
	Snapshot PlaybookSnapshot
	Flags    map[string]bool
}

// Satisfied reports the flag recorded for a rule ID, defaulting to false.
func (c ComplianceRecord) Satisfied(ruleID string) bool {
	return c.Flags[ruleID]
}

// RuleImpact is one row of a correlation report: how trades that satisfied an
// optional rule performed against trades that did not.
type RuleImpact struct {
	RuleID             string  `json:"rule_id"`
	Description        string  `json:"description"`
	SatisfiedCount     int     `json:"satisfied_count"`
	UnsatisfiedCount   int     `json:"unsatisfied_count"`
	SatisfiedWinRate   float64 `json:"satisfied_win_rate"`
	UnsatisfiedWinRate float64 `json:"unsatisfied_win_rate"`
	SatisfiedAvgPnL    float64 `json:"satisfied_avg_pnl"`
	UnsatisfiedAvgPnL  float64 `json:"unsatisfied_avg_pnl"`
	WinRateDelta       float64 `json:"win_rate_delta"`
	AvgPnLDelta        float64 `json:"avg_pnl_delta"`
	LowConfidence      bool    `json:"low_confidence"`
}
