package response

// APIResponseCode is the code carried by the admin/health envelope.
type APIResponseCode int

const (
	APIResponseCodeOK           APIResponseCode = 0
	APIResponseCodeBadRequest   APIResponseCode = 40000
	APIResponseCodeUnauthorized APIResponseCode = 40100
	APIResponseCodeError        APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:           "ok",
	APIResponseCodeBadRequest:   "bad request",
	APIResponseCodeUnauthorized: "unauthorized",
	APIResponseCodeError:        "unexpected error",
}

// APIResponse is the generic response envelope used by the admin and health APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// ErrorCode classifies public endpoint failures for clients.
type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "validation_error"
	ErrorCodeAuthentication  ErrorCode = "authentication_error"
	ErrorCodeUnauthorized    ErrorCode = "unauthorized"
	ErrorCodeAlreadyConsumed ErrorCode = "already_consumed"
	ErrorCodeUpstream        ErrorCode = "upstream_error"
	ErrorCodeStore           ErrorCode = "store_error"
	ErrorCodeInternal        ErrorCode = "internal_error"
)

// ErrorBody is the failure shape of the public storefront endpoints:
// {"error": "<human readable>", "code": "<machine readable>"}.
type ErrorBody struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
}

// Err builds an ErrorBody.
func Err(code ErrorCode, msg string) *ErrorBody {
	return &ErrorBody{Error: msg, Code: code}
}
