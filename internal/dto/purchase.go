package dto

// PurchaseItem is one validated (product, quantity) pair of a purchase
// submission, after request decoding but before reservation.
type PurchaseItem struct {
	ProductID int
	Quantity  int
}

// Reservation is a merged line ready for locking: duplicate productIds from
// the submission are collapsed into a single reservation with their
// quantities summed, so each product is checked and decremented once.
type Reservation struct {
	ProductID int
	Quantity  int
}
