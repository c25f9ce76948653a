package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	"powerpump/internal/domain/member"
)

// maxGymIDAttempts bounds the search for an unused gym ID.
const maxGymIDAttempts = 10

// ErrGymIDExhausted is returned when no unused gym ID was drawn within maxGymIDAttempts.
var ErrGymIDExhausted = errors.New("could not allocate an unused gym ID")

// WelcomeMailer sends the new-member welcome message.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, m member.Member) error
}

// AddMemberInput carries input for the orchestrator.
// Empty MembershipType defaults to basic; empty Status defaults to active.
type AddMemberInput struct {
	Name           string
	Phone          string
	Address        string
	Email          string
	MembershipType string
	StartDate      civil.Date
	EndDate        civil.Date
	Status         string
}

// AddMemberDeps holds dependencies for AddMember.
type AddMemberDeps struct {
	MemberStore   MemberStore
	Lock          sync.Locker
	GenerateID    func() string // injectable for testing
	GenerateGymID func() string // injectable for testing
	Now           func() time.Time
	Mailer        WelcomeMailer // optional: nil skips the welcome email
	Metrics       MemberMetrics // optional
}

// ExecuteAddMember coordinates member registration.
// PRE: Input passes member validation
// POST: Member appended with fresh ID, GymID and CreatedAt; collection saved
// INVARIANT: GymID is unique within the collection at the time of insert
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) (member.Member, error) {
	m := member.Member{
		Name:           strings.TrimSpace(input.Name),
		Phone:          strings.TrimSpace(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		Email:          strings.TrimSpace(input.Email),
		MembershipType: input.MembershipType,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Status:         input.Status,
	}
	if m.MembershipType == "" {
		m.MembershipType = member.TypeBasic
	}
	if m.Status == "" {
		m.Status = member.StatusActive
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	unlock := acquire(deps.Lock)
	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		unlock()
		return member.Member{}, fmt.Errorf("load members: %w", err)
	}

	gymID, err := allocateGymID(members, deps.GenerateGymID)
	if err != nil {
		unlock()
		return member.Member{}, err
	}

	m.ID = newID(deps.GenerateID)
	m.GymID = gymID
	m.CreatedAt = nowFrom(deps.Now)

	members = append(members, m)
	if err := deps.MemberStore.Save(ctx, members); err != nil {
		unlock()
		return member.Member{}, fmt.Errorf("save members: %w", err)
	}
	unlock()

	slog.Info("member_event", "event", "member_added", "member_id", m.ID, "gym_id", m.GymID, "membership_type", m.MembershipType)
	if deps.Metrics != nil {
		deps.Metrics.CountMember("added")
	}

	// Best-effort welcome email after the write is durable
	if deps.Mailer != nil && m.Email != "" {
		if err := deps.Mailer.SendWelcome(ctx, m); err != nil {
			slog.Warn("member_event", "event", "welcome_email_failed", "member_id", m.ID, "error", err)
		}
	}

	return m, nil
}

func allocateGymID(existing []member.Member, generate func() string) (string, error) {
	if generate == nil {
		generate = member.GenerateGymID
	}
	for range maxGymIDAttempts {
		candidate := generate()
		if _, taken := member.FindByGymID(existing, candidate); !taken {
			return candidate, nil
		}
	}
	return "", ErrGymIDExhausted
}

func newID(generate func() string) string {
	if generate != nil {
		return generate()
	}
	return uuid.New().String()
}
