package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

// FormatMoney formats a dollar amount with thousands separators.
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	n := len(intPart)
	var groups []string
	for n > 3 {
		groups = append([]string{intPart[n-3:]}, groups...)
		intPart = intPart[:n-3]
		n = len(intPart)
	}
	groups = append([]string{intPart}, groups...)

	result := "$" + strings.Join(groups, ",") + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPnL formats P&L with an explicit sign.
func FormatPnL(pnl float64) string {
	formatted := FormatMoney(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats a datetime.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// GradeColor returns the terminal color for a grade.
func GradeColor(grade models.Grade) string {
	switch grade {
	case models.GradeA:
		return ColorGreen
	case models.GradeB:
		return ColorCyan
	case models.GradeC:
		return ColorYellow
	default:
		return ColorRed
	}
}

// FormatGrade renders a grade with its color.
func FormatGrade(o *Output, grade models.Grade) string {
	return o.ColoredString(GradeColor(grade), string(grade))
}

// TierLabel renders a rule's tier with its mandatory marker.
func TierLabel(rule models.Rule) string {
	if rule.Mandatory {
		return string(rule.Tier) + "*"
	}
	return string(rule.Tier)
}
