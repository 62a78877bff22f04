package domain

// Purchase is the outcome of an accepted ticket purchase.
type Purchase struct {
	AccountID   int64
	TotalAmount int
	TotalSeats  int
}
