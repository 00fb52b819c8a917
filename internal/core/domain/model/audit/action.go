// Package audit contains the append-only approval trail. Every successful
// stage transition produces exactly one ApprovalEvent recording who acted,
// which edge was taken, and the before/after snapshot of stage and stock.
// Events are immutable: the model offers no mutators and the repository
// contract is append-and-read only.
package audit

import (
	"fmt"

	"distribution/internal/pkg/errs"
)

// Action identifies which state-machine edge an approval event records.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionCreate records order creation by an agent.
	ActionCreate

	// ActionLeaderApprove records a leader endorsing an order.
	ActionLeaderApprove

	// ActionLeaderReject records a leader terminating an order.
	ActionLeaderReject

	// ActionAdminApprove records the final admin settlement.
	ActionAdminApprove

	// ActionAdminReject records an admin sending an order back.
	ActionAdminReject
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:       "unknown",
		ActionCreate:        "create",
		ActionLeaderApprove: "leader_approve",
		ActionLeaderReject:  "leader_reject",
		ActionAdminApprove:  "admin_approve",
		ActionAdminReject:   "admin_reject",
	}
}

func getValidActionStrings() map[Action]string {
	//nolint:exhaustive // ActionUnknown is intentionally excluded as it's invalid
	return map[Action]string{
		ActionCreate:        "create",
		ActionLeaderApprove: "leader_approve",
		ActionLeaderReject:  "leader_reject",
		ActionAdminApprove:  "admin_approve",
		ActionAdminReject:   "admin_reject",
	}
}

// Validate checks that the action is one of the five defined edges.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the snake_case action name used in persistence and APIs.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Role identifies the kind of actor that performed an approval action.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAgent is a field agent creating orders.
	RoleAgent

	// RoleLeader is a regional leader reviewing orders.
	RoleLeader

	// RoleAdmin is a back-office admin settling orders.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleAgent:   "agent",
		RoleLeader:  "leader",
		RoleAdmin:   "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAgent:  "agent",
		RoleLeader: "leader",
		RoleAdmin:  "admin",
	}
}

// Validate checks that the role is agent, leader, or admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
