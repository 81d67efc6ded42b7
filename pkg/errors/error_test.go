package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidPeriod, "invalid period %q", "7x")
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal(`invalid period "7x"`, err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeMarketDataFetchFailed, "chart request failed", cause)
	suite.Equal(ErrCodeMarketDataFetchFailed, err.Code)
	suite.Equal(cause, err.Cause)
	suite.Equal("[700] chart request failed: connection reset", err.Error())
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("unexpected EOF")
	err := Wrapf(ErrCodeMarketDataParseFailed, cause, "decode chart for %s", "AAPL")
	suite.Equal("decode chart for AAPL", err.Message)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeNoDataFound, "table is empty")
	suite.Equal("[200] table is empty", err.Error())
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	inner := New(ErrCodeSymbolNotFound, "no data found")
	err := fmt.Errorf("yahoo query1: %w", inner)
	suite.Equal(ErrCodeSymbolNotFound, GetCode(err))
	suite.True(HasCode(err, ErrCodeSymbolNotFound))
	suite.False(HasCode(err, ErrCodeMarketDataFetchFailed))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSessionFailed, "crumb", cause)
	suite.True(Is(err, cause))

	var target *Error
	suite.True(As(err, &target))
	suite.Equal(ErrCodeSessionFailed, target.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeNoDataFound)
	suite.Equal(ErrorCode(700), ErrCodeMarketDataFetchFailed)
}

func (suite *ErrorTestSuite) TestInsufficientCoverageError() {
	err := NewInsufficientCoverageError(4, 1, "yahoo-spark")
	suite.Equal(4, err.Required)
	suite.Equal(1, err.Actual)
	suite.Equal("[202] yahoo-spark covered 1 symbols, need at least 4", err.Error())

	wrapped := fmt.Errorf("batch: %w", err)
	suite.True(IsInsufficientCoverageError(wrapped))
	suite.False(IsInsufficientCoverageError(errors.New("other")))
}
