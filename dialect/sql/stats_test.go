package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/syssam/introspect/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatsDriver(t *testing.T) {
	drv, mock := newMock(t, dialect.Postgres)
	core, logs := observer.New(zapcore.DebugLevel)
	sd := NewStatsDriver(drv, WithQueryLogger(zap.New(core)), WithSlowThreshold(time.Hour))

	mock.ExpectQuery("SELECT version()").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 16.1"))
	v, err := sd.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "PostgreSQL 16.1", v)

	// Statements issued directly on the ExecQuerier are recorded as well.
	mock.ExpectExec("SET search_path TO public").WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = sd.ExecContext(context.Background(), "SET search_path TO public")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("boom"))
	_, err = sd.QueryContext(context.Background(), "SELECT 1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	s := sd.QueryStats().Stats()
	require.EqualValues(t, 2, s.TotalQueries)
	require.EqualValues(t, 1, s.TotalExecs)
	require.EqualValues(t, 3, s.RoundTrips())
	require.EqualValues(t, 1, s.Errors)
	require.Zero(t, s.SlowQueries)
	require.Equal(t, 3, logs.FilterMessage("statement").Len())

	sd.QueryStats().Reset()
	require.Zero(t, sd.QueryStats().Stats().RoundTrips())
	require.Equal(t, dialect.Postgres, sd.Dialect())
	require.Same(t, drv.DB(), sd.DB())
}

func TestStatsDriver_Slow(t *testing.T) {
	drv, mock := newMock(t, dialect.MySQL)
	core, logs := observer.New(zapcore.WarnLevel)
	sd := NewStatsDriver(drv, WithQueryLogger(zap.New(core)))
	sd.SetSlowThreshold(-1)
	require.Equal(t, time.Duration(-1), sd.SlowThreshold())

	mock.ExpectQuery("SELECT @@GLOBAL.version").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("8.0.34"))
	_, err := sd.Version(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, sd.QueryStats().Stats().SlowQueries)
	require.Equal(t, 1, logs.FilterMessage("slow statement detected").Len())
}
