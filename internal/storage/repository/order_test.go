package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

func TestStorage_CreateOrder(t *testing.T) {
	storage, mock := newMockStorage(t)

	order := models.Order{
		DinerID:     5,
		FranchiseID: 1,
		StoreID:     2,
		Items: []models.OrderItem{
			{MenuID: 1, Description: "Veggie", Price: 0.05},
			{MenuID: 2, Description: "Pepperoni", Price: 0.1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(5, 1, 2, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(33))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(33, 1, "Veggie", 0.05).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(33, 2, "Pepperoni", 0.1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := storage.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, 33, created.ID)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateOrder_RollbackOnItemError(t *testing.T) {
	storage, mock := newMockStorage(t)

	order := models.Order{
		DinerID:     5,
		FranchiseID: 1,
		StoreID:     2,
		Items:       []models.OrderItem{{MenuID: 1, Description: "Veggie", Price: 0.05}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(5, 1, 2, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(33))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(33, 1, "Veggie", 0.05).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := storage.CreateOrder(context.Background(), order)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_UpdateOrderStatus(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE orders SET status`).
		WithArgs("fulfilled", "https://factory.example.com/report/1", 33).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.UpdateOrderStatus(context.Background(), 33,
		models.OrderStatusFulfilled, "https://factory.example.com/report/1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListDinerOrders(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id, franchise_id, store_id, status`).
		WithArgs(5, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "franchise_id", "store_id", "status", "report_url"}).
			AddRow(33, 1, 2, "fulfilled", "https://factory.example.com/report/1"))
	mock.ExpectQuery(`SELECT menu_id, description, price`).
		WithArgs(33).
		WillReturnRows(sqlmock.NewRows([]string{"menu_id", "description", "price"}).
			AddRow(1, "Veggie", 0.05))

	orders, err := storage.ListDinerOrders(context.Background(), 5, 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 33, orders[0].ID)
	assert.Equal(t, 5, orders[0].DinerID)
	assert.Equal(t, models.OrderStatusFulfilled, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Veggie", orders[0].Items[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
