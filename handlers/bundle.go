package handlers

// HandlerBundle groups all HTTP handlers for route registration.
type HandlerBundle struct {
	Profile     *ProfileHandler
	Job         *JobHandler
	Booking     *BookingHandler
	Compliance  *ComplianceHandler
	Reliability *ReliabilityHandler
	Wallet      *WalletHandler
	Review      *ReviewHandler
}
