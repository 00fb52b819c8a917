package order

import (
	"errors"
	"fmt"

	"distribution/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
// It marks a stage precondition failure: the caller holds a stale view of
// the order or is attempting an edge that does not exist. Retrying without
// reloading the order cannot succeed.
var ErrInvalidTransition = errors.New("invalid stage transition")

// InvalidTransitionError reports an attempted edge that is not in the
// transition table. The operation that produced it performed no side effects.
type InvalidTransitionError struct {
	From Stage
	To   Stage
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted edge.
func NewInvalidTransitionError(from, to Stage) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Stage represents the order's position in the two-stage approval flow.
// It implements a state machine with a central transition table; any edge
// not present in the table fails with InvalidTransitionError.
//
// Stage is a value object that validates transitions and provides string
// representations for persistence and display.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// AgentPending is the initial stage after an agent creates the order.
	// The order's quantities are reserved against the agent's allocation.
	AgentPending

	// LeaderApproved means a leader endorsed the order by spending down
	// their own regional allocation. The order awaits admin settlement.
	LeaderApproved

	// AdminApproved is the terminal success stage: company-wide stock has
	// been deducted and the final totals are locked in.
	AdminApproved

	// LeaderRejected is a terminal failure stage: the leader declined the
	// order and the agent's reservation was released.
	LeaderRejected

	// AdminRejected is a terminal failure stage: the admin declined the
	// order and the leader's reservation was released.
	AdminRejected
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:   "unknown",
		AgentPending:   "agent_pending",
		LeaderApproved: "leader_approved",
		AdminApproved:  "admin_approved",
		LeaderRejected: "leader_rejected",
		AdminRejected:  "admin_rejected",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		AgentPending:   "agent_pending",
		LeaderApproved: "leader_approved",
		AdminApproved:  "admin_approved",
		LeaderRejected: "leader_rejected",
		AdminRejected:  "admin_rejected",
	}
}

// transitions is the single source of truth for legal edges.
// No code outside this table decides whether a stage change is allowed.
func transitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		AgentPending:   {LeaderApproved, LeaderRejected},
		LeaderApproved: {AdminApproved, AdminRejected},
	}
}

// Validate checks that the Stage value is one of the five defined stages.
// Used to verify Stage values arriving from persistence or API payloads.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the snake_case stage name used in persistence and APIs.
// Implements fmt.Stringer and is safe to call on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StageFromString parses a stage from its snake_case name.
func StageFromString(v string) (Stage, error) {
	for stage, name := range getValidStageStrings() {
		if name == v {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage is invalid", fmt.Errorf("%q is not a valid stage", v))
}

// IsTerminal reports whether no further transitions exist from this stage.
func (s Stage) IsTerminal() bool {
	_, hasEdges := transitions()[s]
	return !hasEdges && s != StageUnknown
}

// CanTransitionTo reports whether the edge from s to target exists in the
// transition table.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target stage if the edge is legal, or an
// InvalidTransitionError otherwise. The receiver is never mutated; callers
// decide when to adopt the returned stage.
func (s Stage) TransitionTo(target Stage) (Stage, error) {
	if err := target.Validate(); err != nil {
		return StageUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StageUnknown, NewInvalidTransitionError(s, target)
	}

	return target, nil
}

// ValidateCanHaveLeader validates consistency between the stage and leader
// assignment. An order only acquires a leader when one acts on it, so:
//   - agent_pending orders must not reference a leader;
//   - every other stage requires one (the leader who approved or rejected).
func (s Stage) ValidateCanHaveLeader(hasLeader bool) error {
	if hasLeader && s == AgentPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to have a leader", s),
		)
	}

	if !hasLeader && s != AgentPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to have no leader", s),
		)
	}

	return nil
}
