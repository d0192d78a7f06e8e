package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"asklab/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func setupProjectTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestProjectDatabaseAdapter_Save_Success(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO projects \(id, name, created_at\) VALUES \(\$1, \$2, now\(\)\)`).
		WithArgs("1", "Pilot Study").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), domain.NewProject("1", "Pilot Study"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDatabaseAdapter_GetByID_Success(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM projects WHERE id = $1`)).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow("1", "Pilot Study", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT researcher_id FROM project_researchers WHERE project_id = $1 ORDER BY assigned_at`)).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"researcher_id"}).AddRow("r-1").AddRow("r-2"))

	project, err := repo.GetByID(context.Background(), "1")

	assert.NoError(t, err)
	assert.NotNil(t, project)
	assert.Equal(t, "Pilot Study", project.Name)
	assert.Equal(t, []string{"r-1", "r-2"}, project.Researchers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDatabaseAdapter_GetByID_NotFound(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM projects WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	project, err := repo.GetByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, project)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDatabaseAdapter_ListAll_GroupsResearchers(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, created_at FROM projects\s+ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("1", "Pilot Study", now).
			AddRow("2", "Main Study", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT project_id, researcher_id, assigned_at FROM project_researchers ORDER BY assigned_at`)).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "researcher_id", "assigned_at"}).
			AddRow("1", "r-1", now).
			AddRow("2", "r-2", now).
			AddRow("1", "r-3", now))

	projects, err := repo.ListAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Equal(t, []string{"r-1", "r-3"}, projects[0].Researchers)
	assert.Equal(t, []string{"r-2"}, projects[1].Researchers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDatabaseAdapter_AssignResearcher_Duplicate(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO project_researchers`).
		WithArgs("1", "r-1").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.AssignResearcher(context.Background(), "1", "r-1")

	assert.ErrorIs(t, err, domain.ErrDuplicateAssignment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDatabaseAdapter_AssignResearcher_Success(t *testing.T) {
	db, mock := setupProjectTestDB(t)
	repo := NewProjectDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO project_researchers \(project_id, researcher_id, assigned_at\) VALUES \(\$1, \$2, now\(\)\)`).
		WithArgs("1", "r-9").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AssignResearcher(context.Background(), "1", "r-9")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
