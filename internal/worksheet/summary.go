package worksheet

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// Summary describes the answers and operands of a sheet.
type Summary struct {
	ProblemCount         int            `json:"problem_count"`
	AnswerMean           float64        `json:"answer_mean"`
	AnswerMedian         float64        `json:"answer_median"`
	AnswerStdDev         float64        `json:"answer_std_dev"`
	AnswerMin            float64        `json:"answer_min"`
	AnswerMax            float64        `json:"answer_max"`
	OperandMagnitudeMean float64        `json:"operand_magnitude_mean"`
	Techniques           map[string]int `json:"techniques"`
}

// Summarize computes sheet statistics. An empty sheet yields a zero Summary.
func Summarize(sheet *Sheet) (Summary, error) {
	summary := Summary{Techniques: map[string]int{}}
	if sheet == nil || len(sheet.Rows) == 0 {
		return summary, nil
	}
	summary.ProblemCount = len(sheet.Rows)

	answers := make(stats.Float64Data, 0, len(sheet.Rows))
	var magnitudes stats.Float64Data
	for _, row := range sheet.Rows {
		if row.Problem == nil {
			return summary, fmt.Errorf("row %d has no problem", row.Index)
		}
		answers = append(answers, float64(row.Problem.FinalAnswer))
		for _, op := range row.Problem.Sequence {
			magnitudes = append(magnitudes, math.Abs(float64(op)))
		}
		for _, step := range row.Problem.Steps {
			summary.Techniques[step.Technique.String()]++
		}
	}

	var err error
	if summary.AnswerMean, err = stats.Mean(answers); err != nil {
		return summary, err
	}
	if summary.AnswerMedian, err = stats.Median(answers); err != nil {
		return summary, err
	}
	if summary.AnswerStdDev, err = stats.StandardDeviation(answers); err != nil {
		return summary, err
	}
	if summary.AnswerMin, err = stats.Min(answers); err != nil {
		return summary, err
	}
	if summary.AnswerMax, err = stats.Max(answers); err != nil {
		return summary, err
	}
	if summary.OperandMagnitudeMean, err = stats.Mean(magnitudes); err != nil {
		return summary, err
	}

	return summary, nil
}

// techniqueOrder fixes the display order of technique counts.
var techniqueOrder = []soroban.DifficultyClass{soroban.NoFormula, soroban.SmallFriend, soroban.BigFriend}
