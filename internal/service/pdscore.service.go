package service

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ScoreService is the probability-of-default scorer. It is a separate
// predictive path, independent of the readiness rule engine, and currently
// runs the deterministic demo model only. The model version is reported in
// every response so clients can tell which path produced the score.
type ScoreService interface {
	Score(input ScoreInput) ScoreResult
}

// ScoreInput carries loosely-typed borrower fields. Numeric fields accept
// numbers or strings ("12,500", "14.5%") and are coerced before scoring.
type ScoreInput struct {
	LoanAmount    any
	InterestRate  any
	DTI           any
	AnnualIncome  any
	Term          any
	Grade         string
	RevolvingUtil any
	Delinquencies any
	OpenAccounts  any
}

type FeatureContribution struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ScoreResult struct {
	PD           float64               `json:"pd"`
	Features     []FeatureContribution `json:"feats"`
	ModelVersion string                `json:"model_version"`
}

const demoModelVersion = "demo-mock"
const maxScoreFeatures = 7

// Fixed logistic weights for the demo model.
var demoWeights = struct {
	intercept     float64
	interestRate  float64
	dti           float64
	annualIncome  float64
	term          float64
	grade         float64
	revolvingUtil float64
	delinquencies float64
	openAccounts  float64
	loanAmount    float64
}{
	intercept:     -2.0,
	interestRate:  0.15,
	dti:           0.04,
	annualIncome:  -0.000002,
	term:          0.2,
	grade:         0.18,
	revolvingUtil: 0.01,
	delinquencies: 0.25,
	openAccounts:  -0.02,
	loanAmount:    0.000002,
}

var gradeIndex = map[string]float64{
	"A": 0, "B": 1, "C": 2, "D": 3, "E": 4, "F": 5, "G": 6,
}

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

type scoreServiceHandler struct{}

func NewScoreService() ScoreService {
	return scoreServiceHandler{}
}

func (h scoreServiceHandler) Score(input ScoreInput) ScoreResult {
	loanAmount := coerceFloat(input.LoanAmount, 0)
	interestRate := coerceFloat(input.InterestRate, 0)
	dti := coerceFloat(input.DTI, 0)
	annualIncome := coerceFloat(input.AnnualIncome, 0)
	revolvingUtil := coerceFloat(input.RevolvingUtil, 0)
	delinquencies := float64(coerceInt(input.Delinquencies, 0))
	openAccounts := float64(coerceInt(input.OpenAccounts, 0))

	term := 36
	if coerceInt(input.Term, 36) >= 60 {
		term = 60
	}
	termFlag := 0.0
	if term == 60 {
		termFlag = 1.0
	}

	grade := strings.ToUpper(strings.TrimSpace(input.Grade))
	if grade == "" {
		grade = "B"
	}
	gradeIdx, ok := gradeIndex[grade[:1]]
	if !ok {
		gradeIdx = gradeIndex["B"]
	}

	w := demoWeights
	x := w.intercept +
		w.interestRate*interestRate +
		w.dti*dti +
		w.annualIncome*annualIncome +
		w.term*termFlag +
		w.grade*gradeIdx +
		w.revolvingUtil*revolvingUtil +
		w.delinquencies*delinquencies +
		w.openAccounts*openAccounts +
		w.loanAmount*loanAmount
	pd := 1 / (1 + math.Exp(-x))

	features := []FeatureContribution{
		{Name: "Interest rate (%)", Value: math.Abs(w.interestRate * interestRate)},
		{Name: "Debt-to-income (%)", Value: math.Abs(w.dti * dti)},
		{Name: "Term (60m flag)", Value: math.Abs(w.term * termFlag)},
		{Name: "Grade (A-G)", Value: math.Abs(w.grade * gradeIdx)},
		{Name: "Revolving util (%)", Value: math.Abs(w.revolvingUtil * revolvingUtil)},
		{Name: "Annual income (AED)", Value: math.Abs(w.annualIncome * annualIncome)},
		{Name: "Delinq in 2 yrs", Value: math.Abs(w.delinquencies * delinquencies)},
		{Name: "Open accounts", Value: math.Abs(w.openAccounts * openAccounts)},
		{Name: "Loan amount (AED)", Value: math.Abs(w.loanAmount * loanAmount)},
	}
	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Value > features[j].Value
	})
	if len(features) > maxScoreFeatures {
		features = features[:maxScoreFeatures]
	}

	return ScoreResult{
		PD:           pd,
		Features:     features,
		ModelVersion: demoModelVersion,
	}
}

// coerceFloat extracts a float from numbers or embedded numeric text,
// stripping thousands separators first.
func coerceFloat(value any, fallback float64) float64 {
	switch v := value.(type) {
	case nil:
		return fallback
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if match := numberPattern.FindString(cleaned); match != "" {
			if out, err := strconv.ParseFloat(match, 64); err == nil {
				return out
			}
		}
	}
	return fallback
}

func coerceInt(value any, fallback int) int {
	return int(math.Round(coerceFloat(value, float64(fallback))))
}
