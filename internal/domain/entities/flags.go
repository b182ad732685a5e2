package entities

// ApprovalFlag is the order-level lifecycle state.
//
// Main path:
//
//	new -> sentToStorekeeper -> verifiedByStorekeeper -> sentToChecker -> checkerIsChecking -> completed
//
// sentToStorekeeper may also go straight to sentToChecker when every line is already in stock.
// rejected and cancelled are absorbing and reachable from any non-terminal state.
type ApprovalFlag string

const (
	ApprovalNew                   ApprovalFlag = "new"
	ApprovalSentToStorekeeper     ApprovalFlag = "sentToStorekeeper"
	ApprovalVerifiedByStorekeeper ApprovalFlag = "verifiedByStorekeeper"
	ApprovalSentToChecker         ApprovalFlag = "sentToChecker"
	ApprovalCheckerIsChecking     ApprovalFlag = "checkerIsChecking"
	ApprovalCompleted             ApprovalFlag = "completed"
	ApprovalRejected              ApprovalFlag = "rejected"
	ApprovalCancelled             ApprovalFlag = "cancelled"
)

func (f ApprovalFlag) IsTerminal() bool {
	switch f {
	case ApprovalCompleted, ApprovalRejected, ApprovalCancelled:
		return true
	}
	return false
}

// ClosesClaims reports whether no role slot may be claimed any more. A
// completed order still accepts the biller.
func (f ApprovalFlag) ClosesClaims() bool {
	return f == ApprovalRejected || f == ApprovalCancelled
}

// ClaimClosingFlags lists the flags for which ClosesClaims is true, for
// storage predicates.
var ClaimClosingFlags = []ApprovalFlag{ApprovalRejected, ApprovalCancelled}

func (f ApprovalFlag) Valid() bool {
	switch f {
	case ApprovalNew, ApprovalSentToStorekeeper, ApprovalVerifiedByStorekeeper, ApprovalSentToChecker,
		ApprovalCheckerIsChecking, ApprovalCompleted, ApprovalRejected, ApprovalCancelled:
		return true
	}
	return false
}

// FulfillmentFlag is the line-level stock-check state. Values are ordered by
// severity; Replaced and Cancelled are side states outside the ordering.
//
// The numeric values are internal to this process and may be renumbered.
// Never persist or send them: storage and the API carry the name from String
// and read it back with ParseFulfillmentFlag.
type FulfillmentFlag int

const (
	FlagNewItem FulfillmentFlag = iota
	FlagNotChecked
	FlagInStock
	FlagOutOfStock
	FlagReported
	// FlagAvailable is the accepted partial availability of a shortage line.
	// It sits after reported so that an escalated shortage can still be resolved.
	FlagAvailable
	FlagNotAvailable

	FlagReplaced  FulfillmentFlag = 100
	FlagCancelled FulfillmentFlag = 101
)

var fulfillmentNames = map[FulfillmentFlag]string{
	FlagNewItem:      "newItem",
	FlagNotChecked:   "notChecked",
	FlagInStock:      "inStock",
	FlagOutOfStock:   "outOfStock",
	FlagReported:     "reported",
	FlagAvailable:    "available",
	FlagNotAvailable: "notAvailable",
	FlagReplaced:     "replaced",
	FlagCancelled:    "cancelled",
}

func (f FulfillmentFlag) String() string {
	if s, ok := fulfillmentNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFulfillmentFlag is the inverse of String.
func ParseFulfillmentFlag(s string) (FulfillmentFlag, bool) {
	for f, name := range fulfillmentNames {
		if name == s {
			return f, true
		}
	}
	return 0, false
}

// IsSideState reports whether f is one of the absorbing side states.
func (f FulfillmentFlag) IsSideState() bool {
	return f == FlagReplaced || f == FlagCancelled
}

// AtLeast reports whether f is at least as severe as other. Side states are
// never comparable.
func (f FulfillmentFlag) AtLeast(other FulfillmentFlag) bool {
	if f.IsSideState() || other.IsSideState() {
		return false
	}
	return f >= other
}

// AtMost reports whether f is at most as severe as other.
func (f FulfillmentFlag) AtMost(other FulfillmentFlag) bool {
	if f.IsSideState() || other.IsSideState() {
		return false
	}
	return f <= other
}

// IsShortage reports whether the line is priced on its available quantity
// rather than the ordered one.
func (f FulfillmentFlag) IsShortage() bool {
	return f.AtLeast(FlagOutOfStock)
}

// IndicatesInStock is true for lines that can be shipped as they stand.
func (f FulfillmentFlag) IndicatesInStock() bool {
	return f == FlagInStock || f == FlagAvailable
}

// HasStockDecision is true once a storekeeper or checker has looked at the line.
func (f FulfillmentFlag) HasStockDecision() bool {
	return f.AtLeast(FlagInStock)
}
