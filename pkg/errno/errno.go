package errno

// Errno pairs a stable machine code with a display message.
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying a more specific display message
// while keeping the stable code.
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode maps an error back to its code and message. Unknown errors are
// reported as an internal server error with their own text.
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrStorage          = Errno{Code: 10004, Message: "Storage error"}
)

// Vault errors (202xx)
var (
	ErrInvalidAmount    = Errno{Code: 20201, Message: "Invalid amount"}
	ErrSubmissionFailed = Errno{Code: 20202, Message: "Transaction submission failed"}
	ErrBalanceQuery     = Errno{Code: 20203, Message: "Balance query failed"}
	ErrTxNotFound       = Errno{Code: 20204, Message: "Transaction record not found"}
)

// Security policy denials (203xx). One code per verdict reason so the UI
// can branch without parsing messages.
var (
	ErrWalletFrozen         = Errno{Code: 20301, Message: "Wallet is frozen"}
	ErrSessionExpired       = Errno{Code: 20302, Message: "Session expired"}
	ErrPerTransactionLimit  = Errno{Code: 20303, Message: "Per-transaction limit exceeded"}
	ErrDailyLimit           = Errno{Code: 20304, Message: "Daily spending limit exceeded"}
	ErrRateLimit            = Errno{Code: 20305, Message: "Too many transactions per hour"}
	ErrConfirmationRequired = Errno{Code: 20306, Message: "Transaction requires confirmation"}
)
