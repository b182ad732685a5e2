package entities

import "time"

// ClaimResourceKind distinguishes order slots from line decisions.
type ClaimResourceKind string

const (
	ClaimOrder ClaimResourceKind = "order"
	ClaimLine  ClaimResourceKind = "line"
)

// ClaimResource identifies what is being claimed.
type ClaimResource struct {
	Kind ClaimResourceKind
	ID   string
}

func (r ClaimResource) String() string {
	return string(r.Kind) + " " + r.ID
}

// ClaimToken is the projection of an ownership slot returned by a successful
// claim. It is not persisted on its own.
type ClaimToken struct {
	Resource  ClaimResource
	Role      Role
	ActorID   string
	ClaimedAt time.Time
}

// OlderThan lets callers implement their own staleness policy.
func (t ClaimToken) OlderThan(d time.Duration, now time.Time) bool {
	return now.Sub(t.ClaimedAt) > d
}
