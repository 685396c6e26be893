package sessions

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepoCreateIsTransactional(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Session{ID: "s1", UserID: "u1", ImageID: "i1", ObjectLabel: "Red apple", Object: ObjectInfo{DetectedCategory: "food"},
		Status: StatusQuestionsAsked, CreatedAt: now, UpdatedAt: now}
	questions := []Question{
		{ID: "q1", Seq: 1, Text: "Is this food raw or cooked?", AnswerType: "select", Options: []string{"Raw", "Cooked"}, Required: true},
		{ID: "q2", Seq: 2, Text: "Does it have skin?", AnswerType: "boolean"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO estimation_sessions")).
		WithArgs("s1", "u1", "i1", "Red apple", "", []byte(`{"detected_category":"food"}`), "QUESTIONS_ASKED", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_questions")).
		WithArgs("q1", "s1", 1, "Is this food raw or cooked?", "select", "", []byte(`["Raw","Cooked"]`), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_questions")).
		WithArgs("q2", "s1", 2, "Does it have skin?", "boolean", "", []byte(`[]`), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	require.NoError(t, repo.Create(context.Background(), s, questions))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoSaveAnswersRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n := 42.0
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE estimation_sessions SET status = $2")).
		WithArgs("s1", "IN_PROGRESS", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (session_id, question_id) DO UPDATE")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	err = repo.SaveAnswers(context.Background(), "s1", []Answer{{ID: "a1", QuestionID: "q1", ValueNumber: &n}}, StatusInProgress, time.Now())
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoSaveAnswersRefusesClosedSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n := 42.0
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status NOT IN ('ESTIMATED', 'FAILED')")).
		WithArgs("s1", "IN_PROGRESS", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM estimation_sessions WHERE id = $1)")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	err = repo.SaveAnswers(context.Background(), "s1", []Answer{{ID: "a1", QuestionID: "q1", ValueNumber: &n}}, StatusInProgress, time.Now())
	require.ErrorIs(t, err, ErrSessionClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoSetStatusOnlyFromOpenStatus(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		exists   bool
		want     error
	}{
		{name: "open session", affected: 1},
		{name: "closed session", exists: true, want: ErrSessionClosed},
		{name: "missing session", want: ErrNotFound},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta("AND status NOT IN ('ESTIMATED', 'FAILED')")).
				WithArgs("s1", "FAILED", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			if tt.affected == 0 {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
					WithArgs("s1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			}

			repo := &PGRepo{DB: db}
			err = repo.SetStatus(context.Background(), "s1", StatusFailed, time.Now())
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPGRepoGetRejectsNonUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PGRepo{DB: db}
	_, err = repo.Get(context.Background(), "u1", "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetLoadsAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := "7f1c2a60-2f0b-4c1e-9d7a-3b8e5c4d2a10"
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM estimation_sessions WHERE id = $1 AND user_id = $2")).
		WithArgs(id, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_id", "object_label", "object_summary", "object_json", "status", "created_at", "updated_at"}).
			AddRow(id, "u1", "i1", "Beagle", "A dog", []byte(`{"detected_category":"pet"}`), "IN_PROGRESS", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM session_questions WHERE session_id = $1 ORDER BY seq")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "seq", "text", "answer_type", "unit", "options", "required"}).
			AddRow("q1", id, 1, "What is the pet's age category?", "select", "", []byte(`["Adult (1-7 years)"]`), true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM session_answers WHERE session_id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "question_id", "value_text", "value_number", "value_boolean", "value_json", "created_at", "updated_at"}).
			AddRow("a1", id, "q1", "Adult (1-7 years)", nil, nil, []byte(`{}`), now, now))

	repo := &PGRepo{DB: db}
	agg, err := repo.Get(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, agg.Session.Status)
	assert.Equal(t, "pet", agg.Session.Object.DetectedCategory)
	require.Len(t, agg.Questions, 1)
	assert.Equal(t, []string{"Adult (1-7 years)"}, agg.Questions[0].Options)
	require.Len(t, agg.Answers, 1)
	assert.Nil(t, agg.Answers[0].ValueNumber)
	assert.Equal(t, "Adult (1-7 years)", agg.Answers[0].ValueText)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueryBuildsFilters(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	query, args := listQuery("u1", ListFilter{Search: "50%_off", Status: StatusEstimated, Category: "food", From: &from})

	assert.Contains(t, query, "object_label ILIKE $2 OR object_summary ILIKE $2")
	assert.Contains(t, query, "status = $3")
	assert.Contains(t, query, "object_json->>'detected_category' = $4")
	assert.Contains(t, query, "created_at >= $5")
	assert.NotContains(t, query, "created_at <=")
	assert.Equal(t, []any{"u1", `%50\%\_off%`, "ESTIMATED", "food", from}, args)
}
