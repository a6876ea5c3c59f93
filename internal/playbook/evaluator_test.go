package playbook

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

func snapshotWith(rules ...models.Rule) models.PlaybookSnapshot {
	return models.PlaybookSnapshot{
		PlaybookID: "pb1",
		Name:       "ES Opening Drive",
		Rules:      rules,
	}
}

func rule(id string, tier models.Tier, mandatory bool) models.Rule {
	return models.Rule{ID: id, Tier: tier, Mandatory: mandatory, Description: "rule " + id}
}

func TestEvaluate_AllMandatorySatisfied(t *testing.T) {
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("b1", models.TierB, true),
		rule("a1", models.TierA, true),
	)
	grade, err := Evaluate(snapshot, map[string]bool{"c1": true, "b1": true, "a1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeA {
		t.Errorf("expected A, got %s", grade)
	}
}

func TestEvaluate_MissedMandatoryCShortCircuitsToF(t *testing.T) {
	// Even a perfect upper-tier checklist cannot rescue a missed C rule.
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("b1", models.TierB, true),
		rule("a1", models.TierA, true),
	)
	grade, err := Evaluate(snapshot, map[string]bool{"b1": true, "a1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeF {
		t.Errorf("expected F, got %s", grade)
	}
}

func TestEvaluate_MissedMandatoryBCapsAtC(t *testing.T) {
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("b1", models.TierB, true),
		rule("a1", models.TierA, true),
	)
	grade, err := Evaluate(snapshot, map[string]bool{"c1": true, "a1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeC {
		t.Errorf("expected C, got %s", grade)
	}
}

func TestEvaluate_MissedMandatoryACapsAtB(t *testing.T) {
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("b1", models.TierB, true),
		rule("a1", models.TierA, true),
		rule("a2", models.TierA, true),
	)
	grade, err := Evaluate(snapshot, map[string]bool{"c1": true, "b1": true, "a1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeB {
		t.Errorf("expected B, got %s", grade)
	}
}

func TestEvaluate_OptionalRulesCarryNoWeight(t *testing.T) {
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("opt1", models.TierA, false),
		rule("opt2", models.TierB, false),
	)
	grade, err := Evaluate(snapshot, map[string]bool{"c1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeA {
		t.Errorf("missed optional rules must not affect the grade, got %s", grade)
	}
}

func TestEvaluate_EmptyTiersAreVacuouslySatisfied(t *testing.T) {
	grade, err := Evaluate(snapshotWith(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeA {
		t.Errorf("empty playbook should grade A, got %s", grade)
	}
}

func TestEvaluate_UnknownFlagRejected(t *testing.T) {
	snapshot := snapshotWith(rule("c1", models.TierC, true))
	_, err := Evaluate(snapshot, map[string]bool{"ghost": true})
	if err == nil {
		t.Fatal("expected a validation error for a flag outside the snapshot")
	}
	var verr *apperrors.ValidationError
	if !apperrors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestEvaluate_MissingFlagCountsAsUnsatisfied(t *testing.T) {
	snapshot := snapshotWith(
		rule("c1", models.TierC, true),
		rule("b1", models.TierB, true),
	)
	// b1 absent from the map entirely, not recorded false.
	grade, err := Evaluate(snapshot, map[string]bool{"c1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade != models.GradeC {
		t.Errorf("expected C, got %s", grade)
	}
}

type genRule struct {
	Tier      int
	Mandatory bool
	Satisfied bool
}

func genRuleSet() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.Bool(),
		gen.Bool(),
	).Map(func(vals []interface{}) genRule {
		return genRule{
			Tier:      vals[0].(int),
			Mandatory: vals[1].(bool),
			Satisfied: vals[2].(bool),
		}
	}))
}

func buildInputs(rs []genRule) (models.PlaybookSnapshot, map[string]bool) {
	tiers := []models.Tier{models.TierC, models.TierB, models.TierA}
	rules := make([]models.Rule, 0, len(rs))
	flags := make(map[string]bool, len(rs))
	for i, r := range rs {
		id := string(rune('a' + i%26)) + string(rune('0'+i/26))
		rules = append(rules, models.Rule{
			ID:          id,
			Tier:        tiers[r.Tier],
			Mandatory:   r.Mandatory,
			Description: "generated",
		})
		if r.Satisfied {
			flags[id] = true
		}
	}
	return snapshotWith(rules...), flags
}

// TestProperty_EvaluateIsPure verifies that identical inputs always grade
// identically.
func TestProperty_EvaluateIsPure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("same inputs, same grade", prop.ForAll(
		func(rs []genRule) bool {
			snapshot, flags := buildInputs(rs)
			first, err1 := Evaluate(snapshot, flags)
			second, err2 := Evaluate(snapshot, flags)
			if err1 != nil || err2 != nil {
				return false
			}
			return first == second
		},
		genRuleSet(),
	))

	properties.TestingRun(t)
}

// TestProperty_GradeMatchesLowestMissedTier verifies the tier decision ladder
// against an independent reconstruction.
func TestProperty_GradeMatchesLowestMissedTier(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("grade comes from the lowest missed mandatory tier", prop.ForAll(
		func(rs []genRule) bool {
			snapshot, flags := buildInputs(rs)
			grade, err := Evaluate(snapshot, flags)
			if err != nil {
				return false
			}

			missed := make(map[models.Tier]bool)
			for _, r := range snapshot.Rules {
				if r.Mandatory && !flags[r.ID] {
					missed[r.Tier] = true
				}
			}
			want := models.GradeA
			switch {
			case missed[models.TierC]:
				want = models.GradeF
			case missed[models.TierB]:
				want = models.GradeC
			case missed[models.TierA]:
				want = models.GradeB
			}
			return grade == want
		},
		genRuleSet(),
	))

	properties.TestingRun(t)
}

// TestProperty_OptionalFlagsNeverChangeGrade verifies that flipping any
// optional rule's flag leaves the grade untouched.
func TestProperty_OptionalFlagsNeverChangeGrade(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("optional flags carry zero weight", prop.ForAll(
		func(rs []genRule) bool {
			snapshot, flags := buildInputs(rs)
			before, err := Evaluate(snapshot, flags)
			if err != nil {
				return false
			}
			for _, r := range snapshot.Rules {
				if r.Mandatory {
					continue
				}
				flipped := make(map[string]bool, len(flags)+1)
				for k, v := range flags {
					flipped[k] = v
				}
				flipped[r.ID] = !flags[r.ID]
				after, err := Evaluate(snapshot, flipped)
				if err != nil {
					return false
				}
				if after != before {
					return false
				}
			}
			return true
		},
		genRuleSet(),
	))

	properties.TestingRun(t)
}

// TestProperty_SatisfyingMoreRulesNeverLowersGrade verifies monotonicity:
// flipping one more rule to satisfied can only keep or improve the grade.
func TestProperty_SatisfyingMoreRulesNeverLowersGrade(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	rank := map[models.Grade]int{
		models.GradeF: 0,
		models.GradeC: 1,
		models.GradeB: 2,
		models.GradeA: 3,
	}

	properties := gopter.NewProperties(parameters)

	properties.Property("adding a satisfied rule never lowers the grade", prop.ForAll(
		func(rs []genRule) bool {
			snapshot, flags := buildInputs(rs)
			before, err := Evaluate(snapshot, flags)
			if err != nil {
				return false
			}
			for _, r := range snapshot.Rules {
				if flags[r.ID] {
					continue
				}
				more := make(map[string]bool, len(flags)+1)
				for k, v := range flags {
					more[k] = v
				}
				more[r.ID] = true
				after, err := Evaluate(snapshot, more)
				if err != nil {
					return false
				}
				if rank[after] < rank[before] {
					return false
				}
			}
			return true
		},
		genRuleSet(),
	))

	properties.TestingRun(t)
}
