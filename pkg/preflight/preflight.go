// Package preflight wraps the external bank-detail verification service as
// an advisory step check. The authoritative verification happens downstream
// of submission, so a timeout, outage or unknown response from the third
// party degrades to "pass" rather than blocking the applicant.
package preflight

import (
	"context"
	"time"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// Result is the verification service's response.
type Result struct {
	Code string
}

// Verifier checks a sort-code / account-number pair against the external
// service.
type Verifier interface {
	Verify(ctx context.Context, sortCode, accountNumber string) (Result, error)
}

// VerifierFunc adapts a function into a Verifier.
type VerifierFunc func(ctx context.Context, sortCode, accountNumber string) (Result, error)

// Verify delegates to the underlying function.
func (fn VerifierFunc) Verify(ctx context.Context, sortCode, accountNumber string) (Result, error) {
	return fn(ctx, sortCode, accountNumber)
}

// mismatchCodes are the response codes that positively confirm the account
// details do not verify. Any other code, including ones this package has
// never seen, is treated as unknown and passes.
var mismatchCodes = map[string]struct{}{
	"02": {}, // account not found
	"03": {}, // sort code not found
	"06": {}, // modulus check failed
}

// Issue kind reported when the external check confirms a mismatch.
const KindBankDetails = "bankDetails.verificationFailed"

// BankDetails builds a step pre-flight hook verifying the answers at the
// given field names. A confirmed mismatch reports a field-scoped issue on
// accountNumberField; anything short of a confirmed mismatch stays silent.
func BankDetails(verifier Verifier, sortCodeField, accountNumberField string, timeout time.Duration) form.PreFlightFunc {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(ctx context.Context, doc rules.Document) []form.FieldIssue {
		sortCode, okSort := doc.Get(sortCodeField)
		accountNumber, okAccount := doc.Get(accountNumberField)
		if !okSort || !okAccount {
			return nil
		}
		sortValue, _ := sortCode.(string)
		accountValue, _ := accountNumber.(string)
		if sortValue == "" || accountValue == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		result, err := verifier.Verify(ctx, sortValue, accountValue)
		if err != nil {
			// Outage or timeout: fail open.
			return nil
		}
		if _, mismatch := mismatchCodes[result.Code]; !mismatch {
			return nil
		}
		return []form.FieldIssue{{
			Field: accountNumberField,
			Issue: rules.Issue{Kind: KindBankDetails},
		}}
	}
}
