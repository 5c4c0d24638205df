package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeExternalService    ErrorCode = "COMMON_010"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_011"
)

// Conversation module error codes.
const (
	// ErrCodeSessionNotFound: no session exists for the supplied session ID.
	ErrCodeSessionNotFound ErrorCode = "CONV_001"

	// ErrCodeFieldValidation: a stage validator rejected the user's input.
	// Always recovered locally with a corrective re-prompt; never fatal.
	ErrCodeFieldValidation ErrorCode = "CONV_002"

	// ErrCodeAmbiguousInput: the input matched none of the enumerated options
	// for a categorical stage (ticket type, form selection, reason number).
	ErrCodeAmbiguousInput ErrorCode = "CONV_003"

	// ErrCodeStateIntegrity: the session reached a state the transition table
	// forbids (e.g. a form sub-flow with no ticket category). This is an
	// internal invariant breach, never a user error.
	ErrCodeStateIntegrity ErrorCode = "CONV_004"

	// ErrCodeSessionComplete: input arrived after the terminal stage.
	ErrCodeSessionComplete ErrorCode = "CONV_005"
)

// Case module error codes.
const (
	ErrCodeCaseFieldLocked  ErrorCode = "CASE_001" // write-once field already set
	ErrCodeCaseNotFound     ErrorCode = "CASE_002"
	ErrCodeCaseIncomplete   ErrorCode = "CASE_003" // submission attempted before all fields collected
	ErrCodeCaseSnapshotLoad ErrorCode = "CASE_004"
)

// Grounds catalog error codes.
const (
	ErrCodeGroundNotFound ErrorCode = "GRD_001"
	ErrCodeGroundTemplate ErrorCode = "GRD_002"
	ErrCodeGroundInvalid  ErrorCode = "GRD_003" // malformed catalog definition
)

// Prediction module error codes.
const (
	ErrCodePredictionFailed    ErrorCode = "PRED_001"
	ErrCodeCalibrationFailed   ErrorCode = "PRED_002"
	ErrCodeOutcomeHistoryEmpty ErrorCode = "PRED_003"
)

// Document / collaborator error codes.
const (
	ErrCodeRenderFailed     ErrorCode = "DOC_001"
	ErrCodeSubmissionFailed ErrorCode = "DOC_002"
	ErrCodeOCRFailed        ErrorCode = "DOC_003"
	ErrCodeDocumentStore    ErrorCode = "DOC_004"
)

// httpStatusByCode maps error codes to the HTTP status returned by the API
// layer. Codes absent from the map fall back to 500.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeFieldValidation:    http.StatusBadRequest,
	ErrCodeAmbiguousInput:     http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeSessionNotFound:    http.StatusNotFound,
	ErrCodeCaseNotFound:       http.StatusNotFound,
	ErrCodeGroundNotFound:     http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeCaseFieldLocked:    http.StatusConflict,
	ErrCodeSessionComplete:    http.StatusConflict,
	ErrCodeCaseIncomplete:     http.StatusUnprocessableEntity,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeRenderFailed:       http.StatusBadGateway,
	ErrCodeSubmissionFailed:   http.StatusBadGateway,
	ErrCodeOCRFailed:          http.StatusBadGateway,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if s, ok := httpStatusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 400 && s < 500
}

// IsServerError reports whether the code maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	return HTTPStatusForCode(code) >= 500
}
