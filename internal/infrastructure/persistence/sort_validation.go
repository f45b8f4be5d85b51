package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"expense_number": true,
	"amount":         true,
	"incurred_at":    true,
	"status":         true,
	"submitted_at":   true,
	"paid_at":        true,
}

// BudgetSortFields contains allowed sort fields for budgets
var BudgetSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"fiscal_year": true,
	"status":      true,
}

// BankAccountSortFields contains allowed sort fields for bank accounts
var BankAccountSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"account_number":  true,
	"account_name":    true,
	"bank_name":       true,
	"current_balance": true,
	"is_active":       true,
}

// CashFlowSortFields contains allowed sort fields for the cash flow ledger
var CashFlowSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"transaction_number": true,
	"amount":             true,
	"flow_date":          true,
	"type":               true,
	"category":           true,
	"is_reconciled":      true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"po_number":     true,
	"supplier_name": true,
	"total_amount":  true,
	"status":        true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"start_date": true,
	"end_date":   true,
}

// DonorSortFields contains allowed sort fields for donors
var DonorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"email":      true,
	"is_active":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"is_active":     true,
	"last_login_at": true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"file_name":  true,
	"size_bytes": true,
	"category":   true,
}

// ReportSortFields contains allowed sort fields for reports
var ReportSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"type":         true,
	"title":        true,
	"status":       true,
	"period_start": true,
	"period_end":   true,
}

// ActivityLogSortFields contains allowed sort fields for activity logs
var ActivityLogSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"action":      true,
	"entity_kind": true,
	"occurred_at": true,
}
