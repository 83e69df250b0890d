package stats

import "github.com/dalemusser/learnadmin/internal/domain/models"

// CourseFilter narrows a course list.
type CourseFilter struct {
	Search   string
	Status   string
	Category string
}

func (f CourseFilter) Match(c models.Course) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	return matchesAny(f.Search, c.Title, c.Category, c.InstructorName)
}

func FilterCourses(courses []models.Course, f CourseFilter) []models.Course {
	return filter(courses, f.Match)
}

// CourseStats summarizes the catalogue. AverageRating only counts rated
// courses.
type CourseStats struct {
	Total         int
	Published     int
	Draft         int
	Archived      int
	TotalStudents int
	AverageRating float64
}

func CalculateCourseStats(courses []models.Course) CourseStats {
	s := CourseStats{Total: len(courses)}
	rated, sum := 0, 0.0
	for _, c := range courses {
		switch c.Status {
		case models.CourseStatusPublished:
			s.Published++
		case models.CourseStatusDraft:
			s.Draft++
		case models.CourseStatusArchived:
			s.Archived++
		}
		s.TotalStudents += c.StudentCount
		if c.Rating > 0 {
			rated++
			sum += c.Rating
		}
	}
	if rated > 0 {
		s.AverageRating = Round1(sum / float64(rated))
	}
	return s
}

// Categories returns the distinct course categories in first-seen order.
func Categories(courses []models.Course) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range courses {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out
}
