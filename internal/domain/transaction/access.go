package transaction

import "github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"

// ViewerState is the UI-relevant view of a listing for one principal, derived
// purely from the authoritative snapshot. The backend stays the enforcer;
// these booleans only decide what controls to offer.
type ViewerState struct {
	IsOwner              bool `json:"isOwner"`
	HasCompletedPayment  bool `json:"hasCompletedPayment"`
	CanBuy               bool `json:"canBuy"`
	CanMessage           bool `json:"canMessage"`
	CanSeeContactDetails bool `json:"canSeeContactDetails"`
	CanConfirmDispatch   bool `json:"canConfirmDispatch"`
	CanConfirmReceipt    bool `json:"canConfirmReceipt"`
	CanReview            bool `json:"canReview"`
}

// DeriveViewerState computes the gating booleans for viewer against a listing
// and the viewer's transaction for it (nil when none exists). An empty viewer
// means no identity: everything mutating is off.
func DeriveViewerState(l *listing.Listing, tx *Transaction, viewer string, alreadyReviewed, paymentConfigured bool) ViewerState {
	var vs ViewerState
	if l == nil || viewer == "" {
		return vs
	}
	vs.IsOwner = viewer == l.Seller

	unlocked := tx != nil && tx.Status.Unlocked()
	isBuyer := tx != nil && tx.Buyer == viewer
	isSeller := tx != nil && tx.Seller == viewer

	vs.HasCompletedPayment = isBuyer && unlocked
	vs.CanSeeContactDetails = isBuyer && unlocked
	vs.CanMessage = unlocked && (isBuyer || isSeller)
	vs.CanConfirmDispatch = isSeller && tx.Status == StatusCompleted
	vs.CanConfirmReceipt = isBuyer && tx.Status == StatusDispatched
	vs.CanReview = isBuyer && tx.Status.AtLeast(StatusCompleted) && !alreadyReviewed

	noLiveTx := tx == nil || tx.Status == StatusFailed
	vs.CanBuy = !vs.IsOwner && l.IsActive && noLiveTx && paymentConfigured

	return vs
}
