// Package playbook implements the playbook grading engine: the rule catalog,
// the tiered grade evaluator, grade-based position sizing, and optional-rule
// correlation analytics. Everything here is a pure computation over values
// handed in by the caller; persistence belongs to the store.
package playbook

import (
	"github.com/oklog/ulid/v2"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// Catalog manages the rule sets of all playbooks. It holds playbooks in
// memory; callers persist changes through the store after mutating.
type Catalog struct {
	playbooks map[string]*models.Playbook
	order     []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{playbooks: make(map[string]*models.Playbook)}
}

// Load seeds the catalog from persisted playbooks, replacing any current
// contents.
func (c *Catalog) Load(playbooks []models.Playbook) {
	c.playbooks = make(map[string]*models.Playbook, len(playbooks))
	c.order = c.order[:0]
	for i := range playbooks {
		p := playbooks[i]
		c.playbooks[p.ID] = &p
		c.order = append(c.order, p.ID)
	}
}

// CreatePlaybook adds a new empty playbook and returns it.
func (c *Catalog) CreatePlaybook(name string) (models.Playbook, error) {
	if name == "" {
		return models.Playbook{}, apperrors.NewValidationError("name", name, "playbook name must not be empty")
	}
	p := &models.Playbook{
		ID:   ulid.Make().String(),
		Name: name,
	}
	c.playbooks[p.ID] = p
	c.order = append(c.order, p.ID)
	return *p, nil
}

// Playbook returns the playbook with the given ID.
func (c *Catalog) Playbook(id string) (models.Playbook, error) {
	p, ok := c.playbooks[id]
	if !ok {
		return models.Playbook{}, apperrors.NewNotFoundError("playbook", id)
	}
	return *p, nil
}

// Playbooks returns all playbooks in creation order.
func (c *Catalog) Playbooks() []models.Playbook {
	out := make([]models.Playbook, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.playbooks[id])
	}
	return out
}

// AddRule appends a rule to a playbook and returns the new rule's ID.
// Tier and mandatory are fixed for the rule's lifetime.
func (c *Catalog) AddRule(playbookID string, tier models.Tier, mandatory bool, description string) (string, error) {
	p, ok := c.playbooks[playbookID]
	if !ok {
		return "", apperrors.NewNotFoundError("playbook", playbookID)
	}
	if !tier.Valid() {
		return "", apperrors.NewValidationError("tier", string(tier), "tier must be one of C, B, A")
	}
	if description == "" {
		return "", apperrors.NewValidationError("description", description, "rule description must not be empty")
	}

	rule := models.Rule{
		ID:          ulid.Make().String(),
		Tier:        tier,
		Mandatory:   mandatory,
		Description: description,
	}
	p.Rules = append(p.Rules, rule)
	return rule.ID, nil
}

// RemoveRule deletes a rule from whichever playbook owns it. Historical
// compliance records keep their frozen snapshot of the rule.
func (c *Catalog) RemoveRule(ruleID string) error {
	for _, p := range c.playbooks {
		for i, r := range p.Rules {
			if r.ID == ruleID {
				p.Rules = append(p.Rules[:i], p.Rules[i+1:]...)
				return nil
			}
		}
	}
	return apperrors.NewNotFoundError("rule", ruleID)
}

// ListRules returns the playbook's rules in display order.
func (c *Catalog) ListRules(playbookID string) ([]models.Rule, error) {
	p, ok := c.playbooks[playbookID]
	if !ok {
		return nil, apperrors.NewNotFoundError("playbook", playbookID)
	}
	rules := make([]models.Rule, len(p.Rules))
	copy(rules, p.Rules)
	return rules, nil
}
