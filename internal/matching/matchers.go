package matching

import (
	"github.com/spigell/fitscore/internal/features"
)

// Skills compares technical skill sets. The score is the share of job skills found in the resume.
func Skills(resume, job features.Set) DimensionResult {
	return compareSets(resume, job)
}

// Keywords compares domain keyword sets with the same rules as Skills.
func Keywords(resume, job features.Set) DimensionResult {
	return compareSets(resume, job)
}

func compareSets(resume, job features.Set) DimensionResult {
	matched := resume.Intersect(job)

	var (
		score  float64
		status Status
	)

	switch {
	case job.Len() == 0:
		status = StatusUnknown
	default:
		score = 100 * float64(matched.Len()) / float64(job.Len())
		switch {
		case matched.Len() == job.Len():
			status = StatusFullyMatched
		case matched.Len() > 0:
			status = StatusPartiallyMatched
		default:
			status = StatusNotMatched
		}
	}

	result := NewResult(status, score)
	result.Matched = matched.Sorted()
	result.Missing = job.Difference(resume).Sorted()
	result.Extra = resume.Difference(job).Sorted()
	return result
}

// Experience compares the years claimed by the resume with the years the job asks for.
func Experience(resumeYears, jobYears *int) DimensionResult {
	var result DimensionResult

	switch {
	case resumeYears == nil && jobYears == nil:
		result = NewResult(StatusUnknown, 0)
	case resumeYears == nil:
		result = NewResult(StatusNotMatched, 0)
	case jobYears == nil:
		// The job states nothing, so the claim gets neutral credit.
		result = NewResult(StatusUnknown, 50)
	case *resumeYears >= *jobYears:
		result = NewResult(StatusFullyMatched, 100)
	case *resumeYears > 0:
		result = NewResult(StatusPartiallyMatched, 100*float64(*resumeYears)/float64(*jobYears))
	default:
		result = NewResult(StatusNotMatched, 0)
	}

	result.ResumeYears = copyInt(resumeYears)
	result.JobYears = copyInt(jobYears)
	return result
}

// Education checks whether the resume holds any of the degrees the job mentions.
func Education(resume, job features.Set) DimensionResult {
	matched := resume.Intersect(job)

	var result DimensionResult
	switch {
	case resume.Len() == 0 && job.Len() == 0:
		result = NewResult(StatusUnknown, 0)
	case job.Len() == 0:
		result = NewResult(StatusUnknown, 50)
	case matched.Len() > 0:
		result = NewResult(StatusMatched, 100)
	default:
		result = NewResult(StatusNotMatched, 0)
	}

	result.Matched = matched.Sorted()
	result.Missing = job.Difference(resume).Sorted()
	result.Extra = resume.Difference(job).Sorted()
	return result
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
