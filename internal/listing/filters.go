package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// ParseFilters builds browse filters from query parameters:
// q, location, job_type, salary_min, salary_max, industry.
// job_type and industry may repeat or hold a comma list. Unknown job types
// are dropped and unparsable or negative numbers are ignored.
func ParseFilters(v url.Values) types.JobFilters {
	f := types.JobFilters{
		Query:     strings.TrimSpace(v.Get("q")),
		Location:  strings.TrimSpace(v.Get("location")),
		SalaryMin: parseSalary(v.Get("salary_min")),
		SalaryMax: parseSalary(v.Get("salary_max")),
		Industry:  splitList(v["industry"]),
	}
	for _, raw := range splitList(v["job_type"]) {
		if jt, ok := types.ParseJobType(strings.ToLower(raw)); ok {
			f.JobTypes = append(f.JobTypes, jt)
		}
	}
	return f
}

func parseSalary(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func splitList(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
