package security

// Decision is the outcome class of an Evaluate call.
type Decision string

const (
	Allow                 Decision = "allow"
	AllowWithConfirmation Decision = "allow_with_confirmation"
	Deny                  Decision = "deny"
)

// Reason is a stable denial code suitable for programmatic handling.
// Message carries the display text; Reason never changes between releases.
type Reason string

const (
	ReasonWalletFrozen               Reason = "WalletFrozen"
	ReasonSessionExpired             Reason = "SessionExpired"
	ReasonExceedsPerTransactionLimit Reason = "ExceedsPerTransactionLimit"
	ReasonExceedsDailyLimit          Reason = "ExceedsDailyLimit"
	ReasonExceedsRateLimit           Reason = "ExceedsRateLimit"
	ReasonInvalidAmount              Reason = "InvalidAmount"
)

// Verdict is the result of evaluating a proposed transaction. Denials are
// values, not errors: Evaluate never fails for well-formed input.
type Verdict struct {
	Decision Decision `json:"decision"`
	Reason   Reason   `json:"reason,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Allowed reports whether the transaction may proceed (possibly after an
// explicit user confirmation).
func (v Verdict) Allowed() bool {
	return v.Decision != Deny
}

// NeedsConfirmation reports whether the caller must collect an explicit
// confirmation before submitting.
func (v Verdict) NeedsConfirmation() bool {
	return v.Decision == AllowWithConfirmation
}

func deny(reason Reason, message string) Verdict {
	return Verdict{Decision: Deny, Reason: reason, Message: message}
}
