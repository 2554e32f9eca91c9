package mpesa

// Wire models for the Daraja-style push-payment API.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type pushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type pushResponse struct {
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type queryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type queryResponse struct {
	ResponseCode string `json:"ResponseCode"`
	ResultCode   string `json:"ResultCode"`
	ResultDesc   string `json:"ResultDesc"`
}

type apiError struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// errorCodeProcessing is returned by the query endpoint while the customer
// has not yet confirmed or rejected the push prompt.
const errorCodeProcessing = "500.001.1001"

// Result codes reported by the query endpoint.
const (
	resultCodeSuccess = "0"
)

// CheckoutResult is the outcome of a successful payment initiation.
type CheckoutResult struct {
	Reference string // gateway-issued checkout reference
	Message   string // customer-facing gateway message
}

// PaymentState is the gateway-reported state of a checkout reference.
type PaymentState string

const (
	StatePending   PaymentState = "PENDING"
	StateCompleted PaymentState = "COMPLETED"
	StateFailed    PaymentState = "FAILED"
)

// StatusResult is the outcome of a status query.
type StatusResult struct {
	State   PaymentState
	Message string
}
