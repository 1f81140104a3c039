package request

// TransferRequest submits an outgoing transfer. Amount is a decimal string
// so no client-side float ever touches a monetary value.
type TransferRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	// Confirm acknowledges the confirmation-threshold prompt.
	Confirm bool `json:"confirm"`
}

// EvaluateRequest dry-runs the security policy for an amount.
type EvaluateRequest struct {
	Amount string `json:"amount" binding:"required"`
}
