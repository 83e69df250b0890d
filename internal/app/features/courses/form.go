// internal/app/features/courses/form.go
package courses

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// courseInput defines validation rules shared by create and edit.
type courseInput struct {
	Title         string   `validate:"required,max=200" label:"Title"`
	Description   string   `validate:"max=5000" label:"Description"`
	Category      string   `validate:"required,max=100" label:"Category"`
	Level         string   `validate:"required,oneof=beginner intermediate advanced" label:"Level"`
	Language      string   `validate:"max=50" label:"Language"`
	Price         float64  `validate:"gte=0" label:"Price"`
	DiscountPrice float64  `validate:"gte=0" label:"Discount price"`
	Thumbnail     string   `validate:"omitempty,httpurl" label:"Thumbnail"`
	InstructorID  string   `validate:"max=64" label:"Instructor"`
	Status        string   `validate:"required,oneof=draft published archived" label:"Status"`
	Tags          []string `validate:"max=20" label:"Tags"`
}

func (in courseInput) model() models.CourseInput {
	return models.CourseInput{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Level:         in.Level,
		Language:      in.Language,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Thumbnail:     in.Thumbnail,
		InstructorID:  in.InstructorID,
		Status:        in.Status,
		Tags:          in.Tags,
	}
}

// parseForm reads the course form. It returns the values to re-render with
// and the first validation message, if any.
func parseForm(r *http.Request) (courseInput, formData, string) {
	fd := formData{
		Title:         formutil.Trimmed(r, "title"),
		Description:   formutil.Trimmed(r, "description"),
		Category:      formutil.Trimmed(r, "category"),
		Level:         formutil.Trimmed(r, "level"),
		Language:      formutil.Trimmed(r, "language"),
		Price:         formutil.Trimmed(r, "price"),
		DiscountPrice: formutil.Trimmed(r, "discount_price"),
		Thumbnail:     formutil.Trimmed(r, "thumbnail"),
		InstructorID:  formutil.Trimmed(r, "instructor_id"),
		Status:        formutil.Trimmed(r, "status"),
		Tags:          formutil.Trimmed(r, "tags"),
	}
	in := courseInput{
		Title:        fd.Title,
		Description:  fd.Description,
		Category:     fd.Category,
		Level:        fd.Level,
		Language:     fd.Language,
		Thumbnail:    fd.Thumbnail,
		InstructorID: fd.InstructorID,
		Status:       fd.Status,
		Tags:         formutil.List(r, "tags"),
	}

	var ok bool
	if in.Price, ok = formutil.Float(r, "price", 0); !ok {
		return in, fd, "Price must be a number."
	}
	if in.DiscountPrice, ok = formutil.Float(r, "discount_price", 0); !ok {
		return in, fd, "Discount price must be a number."
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, fd, res.First()
	}
	if in.DiscountPrice > 0 && in.DiscountPrice >= in.Price {
		return in, fd, "Discount price must be lower than the price."
	}
	return in, fd, ""
}

func formFromCourse(c models.Course) formData {
	fd := formData{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Level:        c.Level,
		Language:     c.Language,
		Price:        strconv.FormatFloat(c.Price, 'f', -1, 64),
		Thumbnail:    c.Thumbnail,
		InstructorID: c.InstructorID,
		Status:       c.Status,
		Tags:         strings.Join(c.Tags, ", "),
	}
	if c.DiscountPrice > 0 {
		fd.DiscountPrice = strconv.FormatFloat(c.DiscountPrice, 'f', -1, 64)
	}
	return fd
}

// renderForm shows the create or edit form with msg above it.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	title, back := "New Course", "/courses"
	fd.Action = "/courses"
	if fd.IsEdit {
		title, back = "Edit Course", "/courses/"+fd.ID
		fd.Action = "/courses/" + fd.ID + "/edit"
	}
	if fd.Level == "" {
		fd.Level = models.LevelBeginner
	}
	if fd.Status == "" {
		fd.Status = models.CourseStatusDraft
	}
	fd.LevelOptions = format.Options(models.CourseLevels, fd.Level)
	fd.StatusOptions = format.Options(models.CourseStatuses, fd.Status)

	formutil.SetBase(&fd.Base, w, r, title, back)
	fd.SetError(msg)
	templates.Render(w, r, "course_form", fd)
}
