package questions

import (
	"regexp"
	"slices"
	"strings"
)

var (
	projectsHeader = regexp.MustCompile(`(?i)^\s*projects?\s*[:\-]?\s*$`)
	projectPrefix  = regexp.MustCompile(`(?i)^projects?\s*[:\-]?\s*`)
	sectionHeader  = regexp.MustCompile(`^[A-Za-z][A-Za-z\s]{0,30}\s*[:\-]?$`)
	projectWord    = regexp.MustCompile(`(?i)project`)
)

// ExtractProjects lists project names from a resume in first-seen order,
// deduplicated case-insensitively. Lines under a "Projects" header are taken
// until the next section header; any other line mentioning "project" is
// taken as well.
func ExtractProjects(resumeText string) []string {
	var (
		projects  []string
		seen      = make(map[string]bool)
		inSection bool
	)

	for _, raw := range strings.Split(resumeText, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := strings.Trim(raw, " -\t\r")
		lower := strings.ToLower(line)

		if projectsHeader.MatchString(lower) {
			inSection = true
			continue
		}
		if inSection && isSectionHeader(line) && !strings.Contains(lower, "project") {
			inSection = false
		}
		if !inSection && !strings.Contains(lower, "project") {
			continue
		}

		name := strings.TrimSpace(projectPrefix.ReplaceAllString(line, ""))
		key := strings.ToLower(name)
		if name != "" && !seen[key] {
			seen[key] = true
			projects = append(projects, name)
		}
	}

	if len(projects) == 0 {
		return projectNames(resumeText)
	}
	return projects
}

// sectionNames are resume headings that end a Projects section in any case
var sectionNames = map[string]bool{
	"education":        true,
	"skills":           true,
	"technical skills": true,
	"experience":       true,
	"work experience":  true,
	"certifications":   true,
	"achievements":     true,
	"internships":      true,
}

// isSectionHeader reports whether a line looks like the start of a new
// resume section, e.g. "Skills:", "EDUCATION", "experience" or "Education".
// Multi-word title-case lines are treated as entries, not headers.
func isSectionHeader(line string) bool {
	if !sectionHeader.MatchString(line) {
		return false
	}
	if strings.HasSuffix(line, ":") || strings.HasSuffix(line, "-") {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(line))
	if sectionNames[name] || !strings.Contains(name, " ") {
		return true
	}
	return line == strings.ToLower(line) || line == strings.ToUpper(line)
}

// projectNames is the simple fallback scan: the text after "project" on any
// line mentioning it, or the whole line when nothing follows.
func projectNames(resumeText string) []string {
	var names []string
	for _, raw := range strings.Split(resumeText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.Contains(strings.ToLower(line), "project") {
			continue
		}

		name := line
		if loc := projectWord.FindStringIndex(line); loc != nil {
			if rest := strings.TrimSpace(projectPrefix.ReplaceAllString(line[loc[0]:], "")); rest != "" {
				name = rest
			}
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
