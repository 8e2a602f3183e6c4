package payroll

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRecordNotFound   = errors.New("salary record not found")
	ErrPeriodNotFound   = errors.New("period not found")
)
