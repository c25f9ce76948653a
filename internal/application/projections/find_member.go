package projections

import (
	"context"
	"fmt"

	domainMember "powerpump/internal/domain/member"
)

// MemberLookupDeps holds dependencies for single-member lookups.
type MemberLookupDeps struct {
	MemberStore MemberStore
}

// QueryFindMemberByGymID returns the first member carrying gymID.
// POST: Returns domainMember.ErrNotFound when no member matches
func QueryFindMemberByGymID(ctx context.Context, gymID string, deps MemberLookupDeps) (domainMember.Member, error) {
	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return domainMember.Member{}, fmt.Errorf("load members: %w", err)
	}
	m, ok := domainMember.FindByGymID(members, gymID)
	if !ok {
		return domainMember.Member{}, domainMember.ErrNotFound
	}
	return m, nil
}

// QueryGetMember returns the member with the given internal ID.
// POST: Returns domainMember.ErrNotFound when no member matches
func QueryGetMember(ctx context.Context, id string, deps MemberLookupDeps) (domainMember.Member, error) {
	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return domainMember.Member{}, fmt.Errorf("load members: %w", err)
	}
	i := domainMember.IndexOf(members, id)
	if i < 0 {
		return domainMember.Member{}, domainMember.ErrNotFound
	}
	return members[i], nil
}
