package prisoner

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func profileRows(id uuid.UUID, dob *time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "prisoner_number", "prisoner_name", "prisoner_dob"}).
		AddRow(id, "A1409AE", "JAMES HALLS", dob)
}

func expectRefetch(mock sqlmock.Sqlmock, id uuid.UUID, dob *time.Time) {
	mock.ExpectQuery(`SELECT \* FROM "prisoner_profiles" WHERE prisoner_number = \$1(.+)`).
		WillReturnRows(profileRows(id, dob))
	mock.ExpectQuery(`SELECT \* FROM "prisoner_profile_prisons"(.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"prisoner_profile_id", "prison_nomis_id"}))
	mock.ExpectQuery(`SELECT \* FROM "provided_names"(.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "prisoner_profile_id", "name"}))
}

func TestUpsert_NilSeedKeepsIdentityFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositoryImpl{db: db}
	id := uuid.New()
	dob := time.Date(1986, 12, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "prisoner_profiles" WHERE prisoner_number = \$1(.+)`).
		WillReturnRows(profileRows(id, &dob))
	// only the name and the bookkeeping timestamp may be written; dob and
	// single offender id stay out of the update when the seed has neither
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "prisoner_profiles" SET "prisoner_name"=\$1,"modified_at"=\$2 WHERE prisoner_number = \$3`).
		WithArgs("JAMES HALLS", sqlmock.AnyArg(), "A1409AE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectRefetch(mock, id, &dob)

	profile, err := repo.Upsert(context.Background(), "A1409AE",
		security.PrisonerSeed{PrisonerName: "JAMES HALLS"})
	require.NoError(t, err)
	require.NotNil(t, profile.PrisonerDOB)
	assert.True(t, dob.Equal(*profile.PrisonerDOB))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_SeedRefreshesIdentityFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repositoryImpl{db: db}
	id := uuid.New()
	dob := time.Date(1986, 12, 9, 0, 0, 0, 0, time.UTC)
	offenderID := "A1234567"

	mock.ExpectQuery(`SELECT \* FROM "prisoner_profiles" WHERE prisoner_number = \$1(.+)`).
		WillReturnRows(profileRows(id, nil))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "prisoner_profiles" SET "prisoner_dob"=\$1,"prisoner_name"=\$2,"single_offender_id"=\$3,"modified_at"=\$4 WHERE prisoner_number = \$5`).
		WithArgs(&dob, "JAMES HALLS", &offenderID, sqlmock.AnyArg(), "A1409AE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectRefetch(mock, id, &dob)

	_, err := repo.Upsert(context.Background(), "A1409AE", security.PrisonerSeed{
		PrisonerName:     "JAMES HALLS",
		PrisonerDOB:      &dob,
		SingleOffenderID: &offenderID,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
