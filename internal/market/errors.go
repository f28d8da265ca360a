package market

import "errors"

// Every error below is a rejected transaction: the precondition is checked
// before any state is touched, so a failed call leaves all tables unchanged.
var (
	ErrInvalidPrice       = errors.New("invalid price")
	ErrFeeMismatch        = errors.New("listing fee mismatch")
	ErrPriceMismatch      = errors.New("price mismatch")
	ErrNotOwner           = errors.New("not the owner")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNoActiveAuction    = errors.New("no active auction")
	ErrAuctionEnded       = errors.New("auction ended")
	ErrAuctionStillActive = errors.New("auction still active")
	ErrBidTooLow          = errors.New("bid too low")
	ErrNothingToWithdraw  = errors.New("nothing to withdraw")
)
