package scoring

import "fmt"

// ReasoningThreshold separates positive from negative reasoning sentences.
const ReasoningThreshold = 70

// ReasoningInput holds what the reasoning templates need.
type ReasoningInput struct {
	SkillsScore     float64
	SkillsMatched   int
	SkillsMissing   int
	ExperienceScore float64
	EducationScore  float64
}

// Reasoning emits one sentence per dimension in the order skills, experience, education.
func Reasoning(in ReasoningInput) []string {
	points := make([]string, 0, MaxReasoningPoints)

	if in.SkillsScore >= ReasoningThreshold {
		points = append(points, fmt.Sprintf("Strong skill match with %d key requirements", in.SkillsMatched))
	} else {
		points = append(points, fmt.Sprintf("Limited skill alignment - missing %d requirements", in.SkillsMissing))
	}

	if in.ExperienceScore >= ReasoningThreshold {
		points = append(points, "Experience level appropriate for role requirements")
	} else {
		points = append(points, "Experience may need development for optimal fit")
	}

	if in.EducationScore >= ReasoningThreshold {
		points = append(points, "Educational background meets basic requirements")
	} else {
		points = append(points, "Educational qualifications may need review")
	}

	return TopReasons(points)
}

// TopReasons truncates reasoning points to MaxReasoningPoints.
func TopReasons(points []string) []string {
	if len(points) > MaxReasoningPoints {
		return points[:MaxReasoningPoints]
	}
	return points
}
