package services

import "strings"

var commonResponsibilities = []string{
	"Collaborate with team members to achieve organizational goals",
	"Maintain accurate records and documentation",
	"Participate in regular training and professional development",
	"Adhere to company policies and procedures",
	"Contribute to a positive work environment",
}

var commonBenefits = []string{
	"Medical and dental coverage",
	"Annual leave and public holidays",
	"Professional development opportunities",
	"Supportive work environment",
	"Career advancement possibilities",
}

// GenerateResponsibilities picks a template by title keyword, falling back to
// words found in the requirements.
func GenerateResponsibilities(title, requirements string) string {
	t := strings.ToLower(title)

	var specific []string
	switch {
	case strings.Contains(t, "instructor") || strings.Contains(t, "teacher"):
		specific = []string{
			"Develop and deliver curriculum for students",
			"Assess student progress and provide constructive feedback",
			"Prepare teaching materials and resources",
			"Organize educational events and activities",
			"Maintain accurate records of student attendance and progress",
		}
	case strings.Contains(t, "engineer"):
		specific = []string{
			"Design and implement technical solutions",
			"Troubleshoot and resolve technical issues",
			"Collaborate with cross-functional teams",
			"Stay updated with emerging technologies and trends",
			"Document technical specifications and processes",
		}
	case strings.Contains(t, "manager"):
		specific = []string{
			"Lead and mentor team members",
			"Develop and implement strategic plans",
			"Monitor budget and control expenses",
			"Generate reports and analyze performance metrics",
			"Ensure compliance with regulations and standards",
		}
	default:
		words := strings.Fields(strings.ToLower(requirements))
		switch {
		case hasAnyWord(words, "design", "creative", "graphics"):
			specific = []string{
				"Create engaging visual content for various platforms",
				"Maintain brand consistency across all materials",
				"Collaborate with marketing team on campaign materials",
				"Stay current with design trends and techniques",
				"Develop innovative visual solutions for business needs",
			}
		case hasAnyWord(words, "research", "analysis", "data"):
			specific = []string{
				"Collect and analyze data to identify trends",
				"Prepare detailed reports and presentations",
				"Develop research methodologies and frameworks",
				"Make recommendations based on research findings",
				"Stay updated with latest research in the field",
			}
		default:
			specific = []string{
				"Execute tasks related to core job functions",
				"Complete assignments within established deadlines",
				"Report progress to supervisor on a regular basis",
				"Identify opportunities for process improvement",
				"Support organizational objectives and initiatives",
			}
		}
	}
	return strings.Join(append(specific, commonResponsibilities...), "\n")
}

func GenerateBenefits(title string) string {
	t := strings.ToLower(title)

	var specific []string
	switch {
	case strings.Contains(t, "instructor") || strings.Contains(t, "teacher"):
		specific = []string{
			"School holidays break",
			"Educational resources allowance",
			"Flexible teaching schedule",
			"Reduced workload during examination periods",
		}
	case strings.Contains(t, "engineer") || strings.Contains(t, "developer"):
		specific = []string{
			"Latest technology and equipment",
			"Flexible working hours",
			"Remote work options",
			"Technical certification sponsorship",
		}
	case strings.Contains(t, "manager") || strings.Contains(t, "director"):
		specific = []string{
			"Performance-based bonuses",
			"Leadership development programs",
			"Company phone and laptop",
			"Travel opportunities",
		}
	default:
		specific = []string{
			"Competitive salary package",
			"Performance incentives",
			"Work-life balance initiatives",
			"Employee wellness programs",
		}
	}
	return strings.Join(append(specific, commonBenefits...), "\n")
}

func EmploymentTypeFor(title string) string {
	if strings.Contains(strings.ToLower(title), "part-time") {
		return "Part-time"
	}
	return "Full-time"
}

func hasAnyWord(words []string, candidates ...string) bool {
	for _, w := range words {
		for _, c := range candidates {
			if w == c {
				return true
			}
		}
	}
	return false
}
