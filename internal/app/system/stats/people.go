package stats

import "github.com/dalemusser/learnadmin/internal/domain/models"

// UserFilter narrows the learner list.
type UserFilter struct {
	Search string
	Status string
}

func (f UserFilter) Match(u models.User) bool {
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	return matchesAny(f.Search, u.Name, u.Email, u.Phone)
}

func FilterUsers(users []models.User, f UserFilter) []models.User {
	return filter(users, f.Match)
}

// InstructorFilter narrows the instructor list. Search also matches
// expertise tags.
type InstructorFilter struct {
	Search string
	Status string
}

func (f InstructorFilter) Match(i models.Instructor) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	return matchesAny(f.Search, append([]string{i.Name, i.Email}, i.Expertise...)...)
}

func FilterInstructors(instructors []models.Instructor, f InstructorFilter) []models.Instructor {
	return filter(instructors, f.Match)
}
