package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-sql/civil"

	"powerpump/internal/domain/member"
)

// demoMembers are loaded into an empty registry so the desk is usable out of the box.
var demoMembers = []AddMemberInput{
	{Name: "John Smith", Phone: "555-0101", Address: "123 Main St, Mumbai", Email: "john@email.com", MembershipType: member.TypePremium, StartDate: civil.Date{Year: 2024, Month: 1, Day: 1}, EndDate: civil.Date{Year: 2025, Month: 1, Day: 1}, Status: member.StatusActive},
	{Name: "Sarah Johnson", Phone: "555-0102", Address: "456 Park Ave, Delhi", Email: "sarah@email.com", MembershipType: member.TypeElite, StartDate: civil.Date{Year: 2024, Month: 3, Day: 15}, EndDate: civil.Date{Year: 2025, Month: 3, Day: 15}, Status: member.StatusActive},
	{Name: "Mike Williams", Phone: "555-0103", Address: "789 Oak Rd, Bangalore", Email: "mike@email.com", MembershipType: member.TypeBasic, StartDate: civil.Date{Year: 2024, Month: 6, Day: 1}, EndDate: civil.Date{Year: 2024, Month: 12, Day: 1}, Status: member.StatusExpired},
}

// ExecuteSeedDemoMembers adds the demo members when the registry is empty.
// Welcome emails are never sent for demo members.
// PRE: none
// POST: Returns the number of members added (0 when members already exist)
func ExecuteSeedDemoMembers(ctx context.Context, deps AddMemberDeps) (int, error) {
	existing, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load members: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	deps.Mailer = nil
	for i, input := range demoMembers {
		if _, err := ExecuteAddMember(ctx, input, deps); err != nil {
			return i, fmt.Errorf("seed %s: %w", input.Name, err)
		}
	}
	slog.Info("seed_event", "event", "demo_members_seeded", "count", len(demoMembers))
	return len(demoMembers), nil
}
