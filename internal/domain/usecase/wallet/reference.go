package wallet

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
)

// depositReferencePattern matches references produced by BuildDepositReference
var depositReferencePattern = regexp.MustCompile(`^DEP-(\d+)-\d+$`)

// BuildDepositReference encodes the depositing user into the charge's
// external reference so the webhook can credit the right account. The
// timestamp suffix keeps retried deposits distinct.
func BuildDepositReference(userID uint64, at time.Time) string {
	return fmt.Sprintf("DEP-%d-%d", userID, at.UnixMilli())
}

// ParseDepositReference recovers the user id from an external reference.
//
// Possible errors:
//   - errs.ErrInvalidReference: the reference was not produced by
//     BuildDepositReference
func ParseDepositReference(reference string) (uint64, error) {
	match := depositReferencePattern.FindStringSubmatch(reference)
	if match == nil {
		return 0, errs.ErrInvalidReference
	}
	userID, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil || userID == 0 {
		return 0, errs.ErrInvalidReference
	}
	return userID, nil
}
