// Package policy holds the pure authorization decision function for
// applications. It has no side effects and never touches the store; existence
// checks happen before it runs.
package policy

import (
	"github.com/ScholarStream/scholarship_service/internal/domain"
)

type Action int

const (
	ActionViewOne Action = iota
	ActionViewOwn
	ActionViewAll
	ActionCreate
	ActionSetStatus
	ActionSetFeedback
	ActionSetPayment
	ActionDelete
)

// Decision distinguishes an access violation from a business-rule violation
// so callers can map them to different error kinds (403 vs 400).
type Decision int

const (
	Allow Decision = iota
	// DenyForbidden means the actor may never perform the action on this
	// application.
	DenyForbidden
	// DenyPendingOnly means the owner could delete the application, but only
	// while it is still pending.
	DenyPendingOnly
)

// Authorize decides whether actor may perform action on app. app may be nil
// only for actions that do not target a single application (ViewOwn, ViewAll,
// Create).
func Authorize(actor *domain.User, app *domain.Application, action Action) Decision {
	if actor == nil {
		return DenyForbidden
	}

	switch action {
	case ActionViewAll, ActionSetStatus, ActionSetFeedback:
		if actor.Role.AtLeast(domain.RoleModerator) {
			return Allow
		}
		return DenyForbidden

	case ActionViewOwn:
		return Allow

	case ActionCreate:
		// uniqueness is the lifecycle's concern, not the policy's
		return Allow

	case ActionViewOne, ActionSetPayment:
		if actor.Role.AtLeast(domain.RoleModerator) {
			return Allow
		}
		if app != nil && app.OwnedBy(actor.ID) {
			return Allow
		}
		return DenyForbidden

	case ActionDelete:
		if actor.Role == domain.RoleAdmin {
			return Allow
		}
		if app != nil && app.OwnedBy(actor.ID) && actor.Role == domain.RoleStudent {
			if app.ApplicationStatus == domain.StatusPending {
				return Allow
			}
			return DenyPendingOnly
		}
		return DenyForbidden
	}

	return DenyForbidden
}
