package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

func addPlaybookCommands(rootCmd *cobra.Command, app *App) {
	playbookCmd := &cobra.Command{
		Use:   "playbook",
		Short: "Manage playbooks and their rules",
	}

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new playbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybookCreate(cmd, app, args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybookList(cmd, app)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show PLAYBOOK",
		Short: "Show a playbook's rules by tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybookShow(cmd, app, args[0])
		},
	}

	addRuleCmd := &cobra.Command{
		Use:   "add-rule PLAYBOOK DESCRIPTION",
		Short: "Add a rule to a playbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, _ := cmd.Flags().GetString("tier")
			optional, _ := cmd.Flags().GetBool("optional")
			return runPlaybookAddRule(cmd, app, args[0], args[1], tier, !optional)
		},
	}
	addRuleCmd.Flags().StringP("tier", "t", "C", "Rule tier (C, B, or A)")
	addRuleCmd.Flags().Bool("optional", false, "Mark the rule as optional (tracked, not graded)")

	removeRuleCmd := &cobra.Command{
		Use:   "remove-rule PLAYBOOK INDEX",
		Short: "Remove a rule from a playbook by its number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybookRemoveRule(cmd, app, args[0], args[1])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete PLAYBOOK",
		Short: "Delete a playbook (logged trades keep their rule snapshots)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybookDelete(cmd, app, args[0])
		},
	}

	playbookCmd.AddCommand(createCmd, listCmd, showCmd, addRuleCmd, removeRuleCmd, deleteCmd)
	rootCmd.AddCommand(playbookCmd)
}

func runPlaybookCreate(cmd *cobra.Command, app *App, name string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	for _, p := range catalog.Playbooks() {
		if strings.EqualFold(p.Name, name) {
			return apperrors.NewValidationError("name", name, "a playbook with this name already exists")
		}
	}

	p, err := catalog.CreatePlaybook(name)
	if err != nil {
		return err
	}
	if err := app.Store.SavePlaybook(ctx, &p); err != nil {
		return apperrors.Wrap(err, "failed to save playbook")
	}

	app.Logger.Info().Str("id", p.ID).Str("name", p.Name).Msg("Playbook created")
	if output.IsJSON() {
		return output.JSON(p)
	}
	output.Success("Created playbook %q (%s)", p.Name, p.ID)
	return nil
}

func runPlaybookList(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	playbooks := catalog.Playbooks()

	if output.IsJSON() {
		return output.JSON(playbooks)
	}
	if len(playbooks) == 0 {
		output.Info("No playbooks yet. Create one with: trading-manager playbook create NAME")
		return nil
	}

	table := NewTable(output, "NAME", "RULES", "MANDATORY", "OPTIONAL", "ID")
	for _, p := range playbooks {
		mandatory, optional := 0, 0
		for _, r := range p.Rules {
			if r.Mandatory {
				mandatory++
			} else {
				optional++
			}
		}
		table.AddRow(p.Name, strconv.Itoa(len(p.Rules)), strconv.Itoa(mandatory), strconv.Itoa(optional), p.ID)
	}
	table.Render()
	return nil
}

func runPlaybookShow(cmd *cobra.Command, app *App, key string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	p, err := findPlaybook(catalog.Playbooks(), key)
	if err != nil {
		return err
	}

	if output.IsJSON() {
		return output.JSON(p)
	}

	output.Bold("%s", p.Name)
	output.Dim("%s", p.ID)
	if len(p.Rules) == 0 {
		output.Info("No rules yet. Add one with: trading-manager playbook add-rule %q \"DESCRIPTION\"", p.Name)
		return nil
	}
	for _, tier := range []models.Tier{models.TierC, models.TierB, models.TierA} {
		printed := false
		for i, r := range p.Rules {
			if r.Tier != tier {
				continue
			}
			if !printed {
				output.Println()
				output.Bold("Tier %s", tier)
				printed = true
			}
			label := "mandatory"
			if !r.Mandatory {
				label = "optional"
			}
			output.Printf("  %2d. [%s] %s\n", i+1, label, r.Description)
		}
	}
	return nil
}

func runPlaybookAddRule(cmd *cobra.Command, app *App, key, description, tier string, mandatory bool) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	p, err := findPlaybook(catalog.Playbooks(), key)
	if err != nil {
		return err
	}

	ruleID, err := catalog.AddRule(p.ID, models.Tier(strings.ToUpper(tier)), mandatory, description)
	if err != nil {
		return err
	}
	updated, err := catalog.Playbook(p.ID)
	if err != nil {
		return err
	}
	if err := app.Store.SavePlaybook(ctx, &updated); err != nil {
		return apperrors.Wrap(err, "failed to save playbook")
	}

	app.Logger.Info().Str("playbook", p.ID).Str("rule", ruleID).Msg("Rule added")
	if output.IsJSON() {
		return output.JSON(updated)
	}
	output.Success("Added tier %s rule to %q (%d rules total)", strings.ToUpper(tier), p.Name, len(updated.Rules))
	return nil
}

func runPlaybookRemoveRule(cmd *cobra.Command, app *App, key, indexArg string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	p, err := findPlaybook(catalog.Playbooks(), key)
	if err != nil {
		return err
	}

	idx, err := strconv.Atoi(indexArg)
	if err != nil || idx < 1 || idx > len(p.Rules) {
		return apperrors.NewValidationError("index", indexArg, "rule number out of range, see: playbook show")
	}
	rule := p.Rules[idx-1]
	if err := catalog.RemoveRule(rule.ID); err != nil {
		return err
	}
	updated, err := catalog.Playbook(p.ID)
	if err != nil {
		return err
	}
	if err := app.Store.SavePlaybook(ctx, &updated); err != nil {
		return apperrors.Wrap(err, "failed to save playbook")
	}

	app.Logger.Info().Str("playbook", p.ID).Str("rule", rule.ID).Msg("Rule removed")
	if output.IsJSON() {
		return output.JSON(updated)
	}
	output.Success("Removed rule %d from %q. Past trades keep their graded snapshot.", idx, p.Name)
	return nil
}

func runPlaybookDelete(cmd *cobra.Command, app *App, key string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := app.loadCatalog(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load playbooks")
	}
	p, err := findPlaybook(catalog.Playbooks(), key)
	if err != nil {
		return err
	}
	if err := app.Store.DeletePlaybook(ctx, p.ID); err != nil {
		return apperrors.Wrap(err, "failed to delete playbook")
	}

	app.Logger.Info().Str("playbook", p.ID).Msg("Playbook deleted")
	if output.IsJSON() {
		return output.JSON(map[string]string{"deleted": p.ID})
	}
	output.Success("Deleted playbook %q. Logged trades keep their rule snapshots.", p.Name)
	return nil
}
