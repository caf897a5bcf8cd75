// Package grading computes marksheet percentages and letter grades.
package grading

import (
	"math"

	"github.com/yigit/schooldesk/internal/app/models"
)

// Grade thresholds, highest first
var thresholds = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{75, "A"},
	{60, "B"},
	{45, "C"},
	{33, "D"},
}

// FailGrade is given below the lowest threshold
const FailGrade = "F"

// Grade returns the letter grade for a percentage
func Grade(percentage float64) string {
	for _, t := range thresholds {
		if percentage >= t.min {
			return t.grade
		}
	}
	return FailGrade
}

// Round2 rounds to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals sums marks obtained and max marks over subjects
func Totals(subjects []models.Subject) (obtained, max float64) {
	for _, s := range subjects {
		obtained += s.MarksObtained
		max += s.MaxMarks
	}
	return obtained, max
}

// Percentage is obtained/max*100 rounded to two decimals, or 0 when max is 0
func Percentage(subjects []models.Subject) float64 {
	obtained, max := Totals(subjects)
	if max == 0 {
		return 0
	}
	return Round2(obtained / max * 100)
}

// Summary is the computed footer of a marksheet
type Summary struct {
	TotalObtained float64
	TotalMax      float64
	Percentage    float64
	Grade         string
}

// Summarize computes totals, the rounded percentage and the grade of that rounded percentage
func Summarize(subjects []models.Subject) Summary {
	obtained, max := Totals(subjects)
	p := Percentage(subjects)
	return Summary{
		TotalObtained: obtained,
		TotalMax:      max,
		Percentage:    p,
		Grade:         Grade(p),
	}
}
