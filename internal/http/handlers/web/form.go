package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/students-app/internal/types"
	"github.com/aanand-mishra/students-app/internal/validation"
)

// dateLayout is the value format of <input type="date">.
const dateLayout = "2006-01-02"

// Form holds the raw values of a student form exactly as they were
// submitted, so a failed submission can be shown again unchanged.
type Form struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	DateOfBirth string
}

func formFromRequest(r *http.Request) Form {
	return Form{
		ID:          r.PostFormValue("id"),
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		Phone:       r.PostFormValue("phone"),
		DateOfBirth: r.PostFormValue("dateOfBirth"),
	}
}

func formFromStudent(s types.Student) Form {
	f := Form{
		ID:    strconv.FormatInt(s.ID, 10),
		Name:  s.Name,
		Email: s.Email,
	}
	if s.Phone != nil {
		f.Phone = *s.Phone
	}
	if s.DateOfBirth != nil {
		f.DateOfBirth = s.DateOfBirth.Format(dateLayout)
	}
	return f
}

// Student converts the form into a record and validates it with the same
// rules the record service applies. The returned map is nil when the form
// is valid. ID is left zero when the form carries none.
func (f Form) Student() (types.Student, map[string]string) {
	var (
		student types.Student
		fields  = map[string]string{}
	)

	if id := strings.TrimSpace(f.ID); id != "" {
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			fields["id"] = "id must be an integer"
		}
		student.ID = parsed
	}

	student.Name = f.Name
	student.Email = strings.TrimSpace(f.Email)

	if phone := strings.TrimSpace(f.Phone); phone != "" {
		student.Phone = &phone
	}

	if dob := strings.TrimSpace(f.DateOfBirth); dob != "" {
		parsed, err := time.ParseInLocation(dateLayout, dob, time.UTC)
		if err != nil {
			fields["dateOfBirth"] = "dateOfBirth must be a date (YYYY-MM-DD)"
		} else {
			student.DateOfBirth = &parsed
		}
	}

	for name, msg := range validation.Fields(validation.Struct(student)) {
		fields[name] = msg
	}

	if len(fields) == 0 {
		return student, nil
	}
	return student, fields
}
