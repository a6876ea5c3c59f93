package cli

import (
	"testing"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
		{-999.99, "-$999.99"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(150); got != "+$150.00" {
		t.Errorf("got %q", got)
	}
	if got := FormatPnL(-50); got != "-$50.00" {
		t.Errorf("got %q", got)
	}
	if got := FormatPnL(0); got != "$0.00" {
		t.Errorf("got %q", got)
	}
}

func TestTierLabel(t *testing.T) {
	mandatory := models.Rule{Tier: models.TierC, Mandatory: true}
	optional := models.Rule{Tier: models.TierA}
	if got := TierLabel(mandatory); got != "C*" {
		t.Errorf("got %q", got)
	}
	if got := TierLabel(optional); got != "A" {
		t.Errorf("got %q", got)
	}
}

func TestFindPlaybook(t *testing.T) {
	playbooks := []models.Playbook{
		{ID: "id1", Name: "ES Opening Drive"},
		{ID: "id2", Name: "NQ Pullback"},
		{ID: "id3", Name: "NQ Breakout"},
	}

	if p, err := findPlaybook(playbooks, "id2"); err != nil || p.Name != "NQ Pullback" {
		t.Errorf("by ID: %v %v", p, err)
	}
	if p, err := findPlaybook(playbooks, "ES Opening Drive"); err != nil || p.ID != "id1" {
		t.Errorf("by exact name: %v %v", p, err)
	}
	if p, err := findPlaybook(playbooks, "es"); err != nil || p.ID != "id1" {
		t.Errorf("by unique prefix: %v %v", p, err)
	}
	if _, err := findPlaybook(playbooks, "NQ"); err == nil {
		t.Error("ambiguous prefix should fail")
	}
	if _, err := findPlaybook(playbooks, "missing"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestParseRuleSelection(t *testing.T) {
	rules := []models.Rule{
		{ID: "r1"}, {ID: "r2"}, {ID: "r3"},
	}

	flags, err := parseRuleSelection(rules, []int{1, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flags["r1"] || flags["r2"] || !flags["r3"] {
		t.Errorf("flags = %v", flags)
	}

	if _, err := parseRuleSelection(rules, []int{0}); err == nil {
		t.Error("index 0 should fail, selections are 1-based")
	}
	if _, err := parseRuleSelection(rules, []int{4}); err == nil {
		t.Error("out-of-range index should fail")
	}
}
