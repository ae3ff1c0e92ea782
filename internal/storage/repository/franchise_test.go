package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

func TestStorage_CreateFranchise(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO franchises`).
		WithArgs("pizzaPocket").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO franchise_admins`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(7, "franchisee", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := storage.CreateFranchise(context.Background(), "pizzaPocket", []int{7})
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateFranchise_RollbackOnAdminInsertFailure(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO franchises`).
		WithArgs("pizzaPocket").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO franchise_admins`).
		WithArgs(3, 7).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := storage.CreateFranchise(context.Background(), "pizzaPocket", []int{7})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_GetFranchise_NotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id, name FROM franchises`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := storage.GetFranchise(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListFranchises_MoreFlag(t *testing.T) {
	storage, mock := newMockStorage(t)

	// Запрашивается limit+1 строка: лишняя строка дает признак
	// следующей страницы и отбрасывается.
	mock.ExpectQuery(`SELECT id, name\s+FROM franchises`).
		WithArgs("%", 3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "pizzaPocket").
			AddRow(2, "pizzaPlanet").
			AddRow(3, "pizzaLand"))
	for _, id := range []int{1, 2} {
		mock.ExpectQuery(`SELECT u.id, u.name, u.email`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))
		mock.ExpectQuery(`SELECT st.id, st.franchise_id, st.name`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "franchise_id", "name", "total_revenue"}))
	}

	franchises, more, err := storage.ListFranchises(context.Background(), 2, 0, "%")
	require.NoError(t, err)
	assert.True(t, more)
	assert.Len(t, franchises, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_DeleteFranchise_CascadesInOneTx(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM stores WHERE franchise_id`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM franchise_admins`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM user_roles`).
		WithArgs("franchisee", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM franchises`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := storage.DeleteFranchise(context.Background(), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateStore(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`INSERT INTO stores`).
		WithArgs(3, "SLC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	store, err := storage.CreateStore(context.Background(), 3, "SLC")
	require.NoError(t, err)
	assert.Equal(t, &models.Store{ID: 4, FranchiseID: 3, Name: "SLC"}, store)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_FillFranchise_StoreRevenue(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id, name FROM franchises`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "pizzaPocket"))
	mock.ExpectQuery(`SELECT u.id, u.name, u.email`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(7, "franchisee", "f@test.com"))
	mock.ExpectQuery(`SELECT st.id, st.franchise_id, st.name`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "franchise_id", "name", "total_revenue"}).
			AddRow(4, 3, "SLC", 0.1))

	franchise, err := storage.GetFranchise(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []models.FranchiseAdmin{{ID: 7, Name: "franchisee", Email: "f@test.com"}}, franchise.Admins)
	assert.Equal(t, []models.Store{{ID: 4, FranchiseID: 3, Name: "SLC", TotalRevenue: 0.1}}, franchise.Stores)
	assert.NoError(t, mock.ExpectationsWereMet())
}
