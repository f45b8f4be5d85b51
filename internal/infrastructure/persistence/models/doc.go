// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - finance.go: Finance context models (Expense, Budget, BankAccount, CashFlow, PurchaseOrder)
// - program.go: Program context models (Project, Donor, DonorFunding)
// - identity.go: Identity context models (User)
// - document.go: Document context models (Document, Comment)
// - report.go: Reporting models (Report)
// - audit.go: Audit log models (ActivityLog)
package models

// AllModels returns every persistence model for schema migration tooling.
func AllModels() []interface{} {
	return []interface{}{
		&ExpenseModel{},
		&ExpenseApprovalModel{},
		&BudgetModel{},
		&BudgetItemModel{},
		&BankAccountModel{},
		&CashFlowModel{},
		&PurchaseOrderModel{},
		&ProjectModel{},
		&DonorModel{},
		&DonorFundingModel{},
		&UserModel{},
		&DocumentModel{},
		&CommentModel{},
		&ReportModel{},
		&ActivityLogModel{},
	}
}
