package middleware

import (
	"net/http"

	"github.com/amani/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// Action names an operation class on a resource
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionReview  Action = "review"
	ActionApprove Action = "approve"
	ActionPay     Action = "pay"
	ActionManage  Action = "manage"
)

// Resource names for the policy table
const (
	ResourceUsers          = "users"
	ResourceProjects       = "projects"
	ResourceDonors         = "donors"
	ResourceBudgets        = "budgets"
	ResourceExpenses       = "expenses"
	ResourceBankAccounts   = "bank-accounts"
	ResourceCashFlows      = "cash-flows"
	ResourcePurchaseOrders = "purchase-orders"
	ResourceDocuments      = "documents"
	ResourceComments       = "comments"
	ResourceReports        = "reports"
	ResourceActivityLogs   = "activity-logs"
)

type actionSet map[Action]bool

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

var readOnly = actions(ActionRead)
var readCreate = actions(ActionRead, ActionCreate)
var readWrite = actions(ActionRead, ActionCreate, ActionUpdate, ActionDelete)

// policyTable is the single source of authorization decisions: for each
// role, which actions it may take on which resource. Programs managers
// are not enumerated here; they are allowed everything.
var policyTable = map[identity.Role]map[string]actionSet{
	identity.RoleFinanceOfficer: {
		ResourceUsers:          readOnly,
		ResourceProjects:       readOnly,
		ResourceDonors:         readWrite,
		ResourceBudgets:        readWrite,
		ResourceExpenses:       actions(ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionReview, ActionPay),
		ResourceBankAccounts:   readWrite,
		ResourceCashFlows:      readWrite,
		ResourcePurchaseOrders: actions(ActionRead, ActionCreate, ActionUpdate, ActionApprove),
		ResourceDocuments:      readWrite,
		ResourceComments:       readWrite,
		ResourceReports:        readWrite,
		ResourceActivityLogs:   readOnly,
	},
	identity.RoleProjectOfficer: {
		ResourceProjects:       readOnly,
		ResourceDonors:         readOnly,
		ResourceBudgets:        readOnly,
		ResourceExpenses:       actions(ActionRead, ActionCreate, ActionUpdate, ActionDelete),
		ResourceCashFlows:      readOnly,
		ResourcePurchaseOrders: readCreate,
		ResourceDocuments:      readCreate,
		ResourceComments:       actions(ActionRead, ActionCreate, ActionUpdate, ActionDelete),
		ResourceReports:        readOnly,
	},
}

// Allowed evaluates the policy table for one (role, resource, action)
func Allowed(role identity.Role, resource string, action Action) bool {
	if role == identity.RoleProgramsManager {
		return true
	}
	perms, ok := policyTable[role]
	if !ok {
		return false
	}
	set, ok := perms[resource]
	if !ok {
		return false
	}
	return set[action]
}

// RequirePermission gates a route on the policy table. It runs after the
// JWT middleware and reads the role from the validated claims.
func RequirePermission(resource string, action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if !role.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}
		if !Allowed(role, resource, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "Role not permitted for this operation"},
			})
			return
		}
		c.Next()
	}
}
