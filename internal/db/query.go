package db

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// jobWithCompanyColumns must stay in sync with scanJobWithCompany.
const jobWithCompanyColumns = `j.id, j.company_id, j.slug, j.title, j.city, j.state,
	j.salary_min, j.salary_max, j.job_type, j.description, j.requirements, j.apply_url,
	j.territory, j.travel_percentage, j.industry_vertical, j.is_active, j.posted_at,
	j.created_at, j.status, j.stripe_session_id, j.is_featured, j.is_newsletter_featured,
	j.featured_until, j.poster_email,
	c.id, c.name, c.website, c.logo_url, c.created_at`

const jobWithCompanyFrom = ` FROM jobs j JOIN companies c ON c.id = j.company_id`

// buildActiveJobsQuery translates browse filters into a parameterized query.
// Filter categories are ANDed; each text filter ORs across its two columns.
func buildActiveJobsQuery(filters types.JobFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(jobWithCompanyColumns)
	sb.WriteString(jobWithCompanyFrom)
	sb.WriteString(" WHERE j.is_active = TRUE")

	args := []any{}
	argNum := 1

	if q := strings.TrimSpace(filters.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (j.title ILIKE $%d OR j.description ILIKE $%d)", argNum, argNum))
		args = append(args, containsPattern(q))
		argNum++
	}
	if loc := strings.TrimSpace(filters.Location); loc != "" {
		sb.WriteString(fmt.Sprintf(" AND (j.city ILIKE $%d OR j.state ILIKE $%d)", argNum, argNum))
		args = append(args, containsPattern(loc))
		argNum++
	}
	if len(filters.JobTypes) > 0 {
		jobTypes := make([]string, len(filters.JobTypes))
		for i, jt := range filters.JobTypes {
			jobTypes[i] = string(jt)
		}
		sb.WriteString(fmt.Sprintf(" AND j.job_type = ANY($%d)", argNum))
		args = append(args, jobTypes)
		argNum++
	}
	if filters.SalaryMin != nil {
		sb.WriteString(fmt.Sprintf(" AND j.salary_max >= $%d", argNum))
		args = append(args, *filters.SalaryMin)
		argNum++
	}
	if filters.SalaryMax != nil {
		sb.WriteString(fmt.Sprintf(" AND j.salary_min <= $%d", argNum))
		args = append(args, *filters.SalaryMax)
		argNum++
	}
	if len(filters.Industry) > 0 {
		sb.WriteString(fmt.Sprintf(" AND j.industry_vertical = ANY($%d)", argNum))
		args = append(args, filters.Industry)
	}

	sb.WriteString(" ORDER BY j.posted_at DESC")
	return sb.String(), args
}

// likeEscaper makes user text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
