package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"powerpump/internal/domain/member"
)

// MemberWriteDeps holds dependencies for UpdateMember and DeleteMember.
type MemberWriteDeps struct {
	MemberStore MemberStore
	Lock        sync.Locker
	Metrics     MemberMetrics // optional
}

// UpdateMemberInput carries input for the update orchestrator.
type UpdateMemberInput struct {
	ID    string
	Patch member.Patch
}

// ExecuteUpdateMember merges the provided fields into an existing member.
// PRE: ID refers to a stored member
// POST: Returns the updated member; collection saved. Returns member.ErrNotFound if absent
// INVARIANT: ID, GymID and CreatedAt are unchanged
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps MemberWriteDeps) (member.Member, error) {
	unlock := acquire(deps.Lock)
	defer unlock()

	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return member.Member{}, fmt.Errorf("load members: %w", err)
	}
	i := member.IndexOf(members, input.ID)
	if i < 0 {
		return member.Member{}, member.ErrNotFound
	}

	updated := members[i]
	updated.Apply(input.Patch)
	if err := updated.Validate(); err != nil {
		return member.Member{}, err
	}
	members[i] = updated

	if err := deps.MemberStore.Save(ctx, members); err != nil {
		return member.Member{}, fmt.Errorf("save members: %w", err)
	}

	slog.Info("member_event", "event", "member_updated", "member_id", updated.ID, "status", updated.Status)
	if deps.Metrics != nil {
		deps.Metrics.CountMember("updated")
	}
	return updated, nil
}
