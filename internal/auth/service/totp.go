package service

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpPeriod is the TOTP time step in seconds. Fixed at the RFC 6238
// default because authenticator apps assume it.
const totpPeriod = 30

var totpValidateOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      0,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// totpStep is the time step a given instant falls into.
func totpStep(t time.Time) int64 {
	return t.Unix() / totpPeriod
}

// matchTOTPStep validates code against secret allowing one time step of
// clock drift either side and reports which step produced the match. The
// matched step is what gets burned, so an accepted code cannot be accepted
// again from inside the drift window.
func matchTOTPStep(code, secret string, now time.Time) (int64, bool) {
	base := totpStep(now)
	for _, step := range []int64{base, base - 1, base + 1} {
		at := time.Unix(step*totpPeriod, 0)
		if ok, err := totp.ValidateCustom(code, secret, at, totpValidateOpts); err == nil && ok {
			return step, true
		}
	}
	return 0, false
}
