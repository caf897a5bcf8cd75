package models

import (
	"fmt"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// DefaultSubjectMax is the max marks given to a subject added without one
const DefaultSubjectMax = 100

// DefaultSubjects are the subjects a new marksheet starts with
var DefaultSubjects = []string{"Mathematics", "Science", "English"}

// Subject is one row of a marksheet
type Subject struct {
	SubjectName   string  `json:"subjectName" example:"Mathematics"`
	MarksObtained float64 `json:"marksObtained" example:"80"`
	MaxMarks      float64 `json:"maxMarks" example:"100"`
}

// Result is an exam marksheet. Student details are free text and not linked to a Student record.
type Result struct {
	SchoolName string    `json:"schoolName" example:"Shubham English School"`
	Name       string    `json:"name" example:"Rahul"`
	ClassName  string    `json:"className" example:"5th"`
	RollNo     string    `json:"rollNo" example:"12"`
	Subjects   []Subject `json:"subjects"`
}

// SavedResult is a marksheet stored by the school API
type SavedResult struct {
	ID string `json:"_id,omitempty"`
	Result
}

// Validate checks the marksheet can be exported: at least one subject, and
// every subject's marks within 0..max.
func (r Result) Validate() error {
	if len(r.Subjects) == 0 {
		return apperrors.ErrNoSubjects
	}
	for i, s := range r.Subjects {
		if s.MarksObtained < 0 || s.MaxMarks < 0 {
			return fmt.Errorf("%w: subject %d has negative marks", apperrors.ErrValidationFailed, i+1)
		}
		if s.MarksObtained > s.MaxMarks {
			return fmt.Errorf("%w: %s (%g > %g)", apperrors.ErrMarksExceedMaximum, s.SubjectName, s.MarksObtained, s.MaxMarks)
		}
	}
	return nil
}

func (r Result) clone() Result {
	out := r
	out.Subjects = append([]Subject(nil), r.Subjects...)
	return out
}

// ResultForm is the editable marksheet. Every edit returns a new form and leaves the receiver untouched.
type ResultForm struct {
	result Result
}

// NewResultForm starts a marksheet for schoolName with the default subjects
func NewResultForm(schoolName string) ResultForm {
	subjects := make([]Subject, 0, len(DefaultSubjects))
	for _, name := range DefaultSubjects {
		subjects = append(subjects, Subject{SubjectName: name, MaxMarks: DefaultSubjectMax})
	}
	return ResultForm{result: Result{SchoolName: schoolName, Subjects: subjects}}
}

// Result returns a copy of the form's current marksheet
func (f ResultForm) Result() Result {
	return f.result.clone()
}

// WithStudent replaces the free-text student details
func (f ResultForm) WithStudent(name, className, rollNo string) ResultForm {
	r := f.result.clone()
	r.Name, r.ClassName, r.RollNo = name, className, rollNo
	return ResultForm{result: r}
}

// WithSchool replaces the school name
func (f ResultForm) WithSchool(name string) ResultForm {
	r := f.result.clone()
	r.SchoolName = name
	return ResultForm{result: r}
}

// AddSubject appends an empty subject row
func (f ResultForm) AddSubject(name string, maxMarks float64) ResultForm {
	r := f.result.clone()
	r.Subjects = append(r.Subjects, Subject{SubjectName: name, MaxMarks: maxMarks})
	return ResultForm{result: r}
}

// RemoveSubject drops the subject at index. The last remaining subject cannot be removed.
func (f ResultForm) RemoveSubject(index int) (ResultForm, error) {
	if index < 0 || index >= len(f.result.Subjects) {
		return f, fmt.Errorf("%w: subject index %d out of range", apperrors.ErrBadRequest, index)
	}
	if len(f.result.Subjects) == 1 {
		return f, apperrors.ErrNoSubjects
	}
	r := f.result.clone()
	r.Subjects = append(r.Subjects[:index], r.Subjects[index+1:]...)
	return ResultForm{result: r}, nil
}

// SetMarks records marks obtained for the subject at index, rejecting values above its max.
func (f ResultForm) SetMarks(index int, obtained float64) (ResultForm, error) {
	if index < 0 || index >= len(f.result.Subjects) {
		return f, fmt.Errorf("%w: subject index %d out of range", apperrors.ErrBadRequest, index)
	}
	s := f.result.Subjects[index]
	if obtained > s.MaxMarks {
		return f, fmt.Errorf("%w: %s (%g > %g)", apperrors.ErrMarksExceedMaximum, s.SubjectName, obtained, s.MaxMarks)
	}
	if obtained < 0 {
		return f, fmt.Errorf("%w: marks cannot be negative", apperrors.ErrValidationFailed)
	}
	r := f.result.clone()
	r.Subjects[index].MarksObtained = obtained
	return ResultForm{result: r}, nil
}

// FormFromResult rebuilds a form from a submitted marksheet, applying each subject's
// marks through SetMarks so the same checks run as for interactive edits.
func FormFromResult(in Result) (ResultForm, error) {
	form := ResultForm{result: Result{SchoolName: in.SchoolName}}.WithStudent(in.Name, in.ClassName, in.RollNo)
	for i, s := range in.Subjects {
		if s.MaxMarks < 0 {
			return ResultForm{}, fmt.Errorf("%w: subject %d has negative max marks", apperrors.ErrValidationFailed, i+1)
		}
		form = form.AddSubject(s.SubjectName, s.MaxMarks)
		var err error
		if form, err = form.SetMarks(i, s.MarksObtained); err != nil {
			return ResultForm{}, err
		}
	}
	if len(form.result.Subjects) == 0 {
		return ResultForm{}, apperrors.ErrNoSubjects
	}
	return form, nil
}
