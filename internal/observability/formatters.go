// Package observability provides formatted output for the operator CLI commands.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 20
)

// Printer writes boxed, human-readable reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintPendingJobs reports listings still waiting for payment.
// Ages are relative to now.
func (p *Printer) PrintPendingJobs(jobs []db.PendingJob, olderThan time.Duration, now time.Time) {
	var sb strings.Builder

	if len(jobs) == 0 {
		sb.WriteString(fmt.Sprintf("No pending listings older than %s.", olderThan))
		p.printBox("PENDING PAYMENT", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("%d listing(s) unpaid for more than %s\n\n", len(jobs), olderThan))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		j := jobs[i]
		sb.WriteString(fmt.Sprintf("• %s\n", j.Slug))
		sb.WriteString(fmt.Sprintf("    %s\n", j.Title))
		sb.WriteString(fmt.Sprintf("    id: %s  age: %s\n", j.ID, now.Sub(j.CreatedAt).Truncate(time.Minute)))
		if j.PosterEmail != nil {
			sb.WriteString(fmt.Sprintf("    poster: %s\n", *j.PosterEmail))
		}
		if j.StripeSessionID != nil {
			sb.WriteString(fmt.Sprintf("    session: %s\n", *j.StripeSessionID))
		} else {
			sb.WriteString("    session: none (checkout never opened)\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(jobs)-maxItemsToShow))
	}

	p.printBox("PENDING PAYMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMigrationVersion reports the schema version of the database.
func (p *Printer) PrintMigrationVersion(version uint, dirty bool) {
	var sb strings.Builder
	if version == 0 {
		sb.WriteString("No migrations applied")
	} else {
		sb.WriteString(fmt.Sprintf("Version: %d", version))
	}
	if dirty {
		sb.WriteString("\nState:   DIRTY (a migration failed part way; fix and force the version)")
	}
	p.printBox("SCHEMA VERSION", sb.String())
}

// PrintConfig summarizes the effective configuration. Secrets are masked.
func (p *Printer) PrintConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Port:              %d\n", cfg.Port))
	sb.WriteString(fmt.Sprintf("Site URL:          %s\n", cfg.SiteURL))
	sb.WriteString(fmt.Sprintf("Database:          %s\n", maskSecret(cfg.DatabaseURL)))
	sb.WriteString(fmt.Sprintf("Stripe key:        %s\n", maskSecret(cfg.StripeSecretKey)))
	sb.WriteString(fmt.Sprintf("Webhook secret:    %s\n", maskSecret(cfg.StripeWebhookSecret)))
	sb.WriteString(fmt.Sprintf("Currency:          %s\n", cfg.Currency))
	sb.WriteString(fmt.Sprintf("Featured duration: %s\n", cfg.FeaturedDuration))
	sb.WriteString(fmt.Sprintf("Log level:         %s", cfg.LogLevel))

	p.printBox("CONFIGURATION", sb.String())
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return "(unset)"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "****"
	}
}
