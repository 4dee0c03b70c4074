package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT NOW").
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(now))

	dbTime, err := NewHealthService(db).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, dbTime)
}

func TestHealthCheck_DBDown(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT NOW").
		WillReturnError(errors.New("connection refused"))

	_, err = NewHealthService(db).Check(context.Background())
	assert.Error(t, err)
}
