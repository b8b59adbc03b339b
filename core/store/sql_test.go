package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewSQL(db), mock
}

func TestSQLStore_UpdateLocksStockRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `stocks` WHERE id = \\?.* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "name", "sizes"}).
			AddRow("stk-1", "tops", "Tee", []byte(`{"M":5}`)))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(tx Tx) error {
		st, err := tx.GetStock("stk-1")
		if err != nil {
			return err
		}
		assert.Equal(t, 5, st.Sizes["M"])
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ViewDoesNotLock(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `stocks` WHERE id = \\? ORDER BY `stocks`.`id` LIMIT \\S+$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sizes"}).AddRow("stk-1", `{"M":"2"}`))
	mock.ExpectCommit()

	err := s.View(context.Background(), func(tx Tx) error {
		st, err := tx.GetStock("stk-1")
		if err != nil {
			return err
		}
		assert.Equal(t, 2, st.Sizes["M"])
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_NotFoundRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := s.Update(context.Background(), func(tx Tx) error {
		_, err := tx.GetOrder("missing")
		return err
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_QueryErrorIsWrapped(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `stocks`").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.Update(context.Background(), func(tx Tx) error {
		_, err := tx.ListStocks()
		return err
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to list stocks")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_DeleteMissingIsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `stocks` WHERE id = \\?").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Update(context.Background(), func(tx Tx) error {
		return tx.DeleteStock("ghost")
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
