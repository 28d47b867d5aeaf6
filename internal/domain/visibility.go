package domain

// SampleVisibility is the predicate narrowing which samples an actor may see.
// The storage layer translates it into an OR-union over the consultation's
// facility: created-by always qualifies, state or district scope widens it.
type SampleVisibility struct {
	Unrestricted  bool
	CreatorUserID int64
	StateID       *int64
	DistrictID    *int64
}

// SampleVisibilityFor compiles the visibility predicate for an actor.
// Superusers see everything. Everyone else sees samples whose consultation
// facility they created, widened to their state for StateLabAdmin and above,
// else to their district for DistrictLabAdmin and above.
func SampleVisibilityFor(actor *User) SampleVisibility {
	if actor.Superuser {
		return SampleVisibility{Unrestricted: true}
	}
	vis := SampleVisibility{CreatorUserID: actor.ID}
	if actor.Role.AtLeast(RoleStateLabAdmin) {
		vis.StateID = actor.StateID
	} else if actor.Role.AtLeast(RoleDistrictLabAdmin) {
		vis.DistrictID = actor.DistrictID
	}
	return vis
}
