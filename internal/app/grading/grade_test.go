package grading

import (
	"testing"

	"github.com/yigit/schooldesk/internal/app/models"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{75, "A"},
		{60, "B"},
		{59.99, "C"},
		{45, "C"},
		{33, "D"},
		{32.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := Grade(tt.p); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Subject{
		{SubjectName: "Maths", MarksObtained: 80, MaxMarks: 100},
		{SubjectName: "Art", MarksObtained: 45, MaxMarks: 50},
	})
	if s.TotalObtained != 125 || s.TotalMax != 150 {
		t.Errorf("totals = %v/%v", s.TotalObtained, s.TotalMax)
	}
	if s.Percentage != 83.33 || s.Grade != "A" {
		t.Errorf("got %v %q, want 83.33 A", s.Percentage, s.Grade)
	}
}

func TestSummarize_ZeroMax(t *testing.T) {
	s := Summarize([]models.Subject{{SubjectName: "Blank"}})
	if s.Percentage != 0 || s.Grade != "F" {
		t.Errorf("got %v %q, want 0 F", s.Percentage, s.Grade)
	}
	if Summarize(nil).Grade != "F" {
		t.Error("no subjects should grade F")
	}
}

func TestSummarize_GradesRoundedPercentage(t *testing.T) {
	// 89.997% rounds to 90.00
	s := Summarize([]models.Subject{{MarksObtained: 899.97, MaxMarks: 1000}})
	if s.Percentage != 90 || s.Grade != "A+" {
		t.Errorf("got %v %q, want 90 A+", s.Percentage, s.Grade)
	}
}
