package api

import (
	"fmt"

	"rmassistant/internal/service"

	"github.com/gin-gonic/gin"
)

// scoreRequest tolerates loosely-typed clients: numeric fields may arrive
// as numbers or strings and are coerced by the score service.
type scoreRequest struct {
	LoanAmount    any     `json:"loan_amnt"`
	InterestRate  any     `json:"int_rate"`
	DTI           any     `json:"dti"`
	AnnualIncome  any     `json:"annual_inc"`
	Term          any     `json:"term"`
	Grade         *string `json:"grade"`
	RevolvingUtil any     `json:"revol_util"`
	Delinquencies any     `json:"delinq_2yrs"`
	OpenAccounts  any     `json:"open_acc"`
}

func (h ApiHandler) score(c *gin.Context) {
	var requestBody scoreRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	grade := "B"
	if requestBody.Grade != nil && *requestBody.Grade != "" {
		grade = *requestBody.Grade
	}

	result := h.ScoreService.Score(service.ScoreInput{
		LoanAmount:    requestBody.LoanAmount,
		InterestRate:  requestBody.InterestRate,
		DTI:           requestBody.DTI,
		AnnualIncome:  requestBody.AnnualIncome,
		Term:          requestBody.Term,
		Grade:         grade,
		RevolvingUtil: requestBody.RevolvingUtil,
		Delinquencies: requestBody.Delinquencies,
		OpenAccounts:  requestBody.OpenAccounts,
	})

	c.JSON(200, result)
}
