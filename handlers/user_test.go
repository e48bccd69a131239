package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentroost/rentroost-api/utils"
)

func deleteAccountContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/user/account", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "user1")
	return c, w
}

func TestDeleteAccountRemovesAuditRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT password_hash FROM users").WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))
	mock.ExpectBegin()
	// Audit rows carry no FK cascade, so they go before the user row.
	mock.ExpectExec("DELETE FROM audit_logs").WithArgs("user1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM users").WithArgs("user1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := &UserHandler{DB: db}
	c, w := deleteAccountContext(`{"password":"s3cret"}`)
	h.DeleteAccount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountRollsBackWhenUserDeleteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT password_hash FROM users").WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM audit_logs").WithArgs("user1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM users").WithArgs("user1").WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	h := &UserHandler{DB: db}
	c, w := deleteAccountContext(`{"password":"s3cret"}`)
	h.DeleteAccount(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT password_hash FROM users").WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hash))

	h := &UserHandler{DB: db}
	c, w := deleteAccountContext(`{"password":"wrong"}`)
	h.DeleteAccount(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
