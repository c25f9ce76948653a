package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"powerpump/internal/domain/member"
)

// DeleteMemberInput carries input for the delete orchestrator.
type DeleteMemberInput struct {
	ID string
}

// ExecuteDeleteMember removes a member and reports whether one was removed.
// PRE: none
// POST: No member with ID remains. Attendance history is left in place
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps MemberWriteDeps) (bool, error) {
	unlock := acquire(deps.Lock)
	defer unlock()

	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load members: %w", err)
	}
	before := len(members)
	kept := slices.DeleteFunc(members, func(m member.Member) bool { return m.ID == input.ID })
	if len(kept) == before {
		return false, nil
	}
	if err := deps.MemberStore.Save(ctx, kept); err != nil {
		return false, fmt.Errorf("save members: %w", err)
	}

	slog.Info("member_event", "event", "member_deleted", "member_id", input.ID)
	if deps.Metrics != nil {
		deps.Metrics.CountMember("deleted")
	}
	return true, nil
}
