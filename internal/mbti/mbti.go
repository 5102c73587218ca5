// Package mbti scores the 40-item personality survey and describes the
// sixteen resulting type codes.
package mbti

import (
	"fmt"
	"strings"
)

const (
	QuestionCount = 40
	GroupSize     = 10
	MinAnswer     = 1
	MaxAnswer     = 5

	// Threshold is the group sum at or above which the first letter of the
	// pair wins. It is a fixed cutoff, not the midpoint of the 10..50 range.
	Threshold = 30
)

// Dichotomy is one of the four independent letter pairs.
type Dichotomy struct {
	Key    string // EI, SN, TF, JP
	Title  string
	First  byte
	Second byte
}

// Dichotomies are in question order: items 1-10 score EI, 11-20 SN, 21-30 TF, 31-40 JP.
var Dichotomies = [4]Dichotomy{
	{Key: "EI", Title: "Extraversion (E) vs. Introversion (I)", First: 'E', Second: 'I'},
	{Key: "SN", Title: "Sensing (S) vs. Intuition (N)", First: 'S', Second: 'N'},
	{Key: "TF", Title: "Thinking (T) vs. Feeling (F)", First: 'T', Second: 'F'},
	{Key: "JP", Title: "Judging (J) vs. Perceiving (P)", First: 'J', Second: 'P'},
}

// Result is a scored assessment.
type Result struct {
	Type   string         `json:"mbtiType"`
	Scores map[string]int `json:"scores"`
}

// Score maps exactly 40 answers, each in [1,5], to a type code.
func Score(answers []int) (Result, error) {
	if len(answers) != QuestionCount {
		return Result{}, fmt.Errorf("expected %d answers, got %d", QuestionCount, len(answers))
	}
	for i, a := range answers {
		if a < MinAnswer || a > MaxAnswer {
			return Result{}, fmt.Errorf("answer %d out of range: %d", i+1, a)
		}
	}

	res := Result{Scores: make(map[string]int, len(Dichotomies))}
	code := make([]byte, 0, len(Dichotomies))
	for g, d := range Dichotomies {
		sum := 0
		for _, a := range answers[g*GroupSize : (g+1)*GroupSize] {
			sum += a
		}
		res.Scores[d.Key] = sum
		if sum >= Threshold {
			code = append(code, d.First)
		} else {
			code = append(code, d.Second)
		}
	}
	res.Type = string(code)
	return res, nil
}

// Normalize upper-cases and trims a type code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidType reports whether code is one of the sixteen type codes.
func IsValidType(code string) bool {
	_, ok := types[Normalize(code)]
	return ok
}
