package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockExpenseRepository creates a GormExpenseRepository with a mocked SQL connection
func newMockExpenseRepository(t *testing.T) (*GormExpenseRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormExpenseRepository(gormDB), mock, mockDB
}

func expenseRows(id uuid.UUID, number string, status finance.ExpenseStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "expense_number", "project_id", "amount", "currency", "description", "incurred_at", "status", "submitted_by"}).
		AddRow(id, number, uuid.New(), decimal.NewFromInt(250), "USD", "Field transport", time.Now(), status, uuid.New())
}

func TestNewGormExpenseRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormExpenseRepository_FindByID(t *testing.T) {
	t.Run("finds existing expense", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		expenseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE id = \$1 AND "expenses"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(expenseID, 1).
			WillReturnRows(expenseRows(expenseID, "EXP-202601-00001", finance.ExpenseStatusSubmitted))

		expense, err := repo.FindByID(context.Background(), expenseID)

		assert.NoError(t, err)
		assert.NotNil(t, expense)
		assert.Equal(t, expenseID, expense.ID)
		assert.Equal(t, "EXP-202601-00001", expense.ExpenseNumber)
		assert.Equal(t, finance.ExpenseStatusSubmitted, expense.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent expense", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		expenseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE id = \$1 AND "expenses"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(expenseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		expense, err := repo.FindByID(context.Background(), expenseID)

		assert.Error(t, err)
		assert.Nil(t, expense)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the row", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		expenseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE id = \$1 AND "expenses"\."deleted_at" IS NULL ORDER BY .* FOR UPDATE`).
			WithArgs(expenseID, 1).
			WillReturnRows(expenseRows(expenseID, "EXP-202601-00002", finance.ExpenseStatusApproved))

		expense, err := repo.FindByIDForUpdate(context.Background(), expenseID)

		assert.NoError(t, err)
		assert.NotNil(t, expense)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_FindByExpenseNumber(t *testing.T) {
	t.Run("finds expense by number", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		expenseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE expense_number = \$1 AND "expenses"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs("EXP-202601-00003", 1).
			WillReturnRows(expenseRows(expenseID, "EXP-202601-00003", finance.ExpenseStatusDraft))

		expense, err := repo.FindByExpenseNumber(context.Background(), "EXP-202601-00003")

		assert.NoError(t, err)
		assert.NotNil(t, expense)
		assert.Equal(t, "EXP-202601-00003", expense.ExpenseNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_FindAll(t *testing.T) {
	t.Run("applies status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		status := finance.ExpenseStatusSubmitted

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE status = \$1 AND "expenses"\."deleted_at" IS NULL ORDER BY created_at DESC`).
			WithArgs(status).
			WillReturnRows(expenseRows(uuid.New(), "EXP-202601-00004", status))

		expenses, err := repo.FindAll(context.Background(), finance.ExpenseFilter{Status: &status})

		assert.NoError(t, err)
		assert.Len(t, expenses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE "expenses"\."deleted_at" IS NULL ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 10).
			WillReturnRows(expenseRows(uuid.New(), "EXP-202601-00005", finance.ExpenseStatusDraft))

		filter := finance.ExpenseFilter{}
		filter.Page = 2
		filter.PageSize = 10

		expenses, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, expenses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_Count(t *testing.T) {
	t.Run("counts without pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		projectID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "expenses" WHERE project_id = \$1 AND "expenses"\."deleted_at" IS NULL`).
			WithArgs(projectID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), finance.ExpenseFilter{ProjectID: &projectID})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		expenseID := uuid.New()

		mock.ExpectExec(`UPDATE "expenses" SET "deleted_at"=\$1 WHERE id = \$2 AND "expenses"\."deleted_at" IS NULL`).
			WithArgs(sqlmock.AnyArg(), expenseID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), expenseID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_GenerateExpenseNumber(t *testing.T) {
	t.Run("numbers are sequential within the month", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		yearMonth := time.Now().Format("200601")

		mock.ExpectQuery(`SELECT count\(\*\) FROM "expenses" WHERE expense_number LIKE \$1`).
			WithArgs(fmt.Sprintf("EXP-%s-%%", yearMonth)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

		number, err := repo.GenerateExpenseNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("EXP-%s-00042", yearMonth), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormExpenseRepository_SumByProject(t *testing.T) {
	t.Run("sums amounts restricted to statuses", func(t *testing.T) {
		repo, mock, mockDB := newMockExpenseRepository(t)
		defer mockDB.Close()

		projectID := uuid.New()
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "expenses" WHERE project_id = \$1 AND incurred_at >= \$2 AND incurred_at <= \$3 AND status IN \(\$4,\$5\)`).
			WithArgs(projectID, from, to, finance.ExpenseStatusApproved, finance.ExpenseStatusPaid).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.NewFromInt(1250)))

		total, err := repo.SumByProject(context.Background(), projectID,
			[]finance.ExpenseStatus{finance.ExpenseStatusApproved, finance.ExpenseStatusPaid}, from, to)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1250)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
