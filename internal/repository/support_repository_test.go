package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/tutoring-api/internal/models"
)

func newSupportMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSupportRepositoryCreateTicket(t *testing.T) {
	db, mock, cleanup := newSupportMock(t)
	defer cleanup()
	repo := NewSupportRepository(db)

	mock.ExpectExec("INSERT INTO support_tickets").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ticket := &models.SupportTicket{
		RequesterID: "user-1",
		Subject:     "Billing question",
		Category:    "billing",
		Status:      models.TicketStatusOpen,
		Priority:    models.TicketPriorityMedium,
	}
	err := repo.CreateTicket(context.Background(), ticket)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportRepositoryListTicketsFiltered(t *testing.T) {
	db, mock, cleanup := newSupportMock(t)
	defer cleanup()
	repo := NewSupportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "requester_id", "subject", "category", "status", "priority", "assignee_id", "resolved_at", "created_at", "updated_at"}).
		AddRow("tic-1", "user-1", "Billing question", "billing", "open", "medium", nil, nil, now, now)

	status := models.TicketStatusOpen
	mock.ExpectQuery("SELECT .+ FROM support_tickets WHERE 1=1 AND requester_id = \\$1 AND status = \\$2 ORDER BY updated_at DESC LIMIT 20 OFFSET 0").
		WithArgs("user-1", status).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM support_tickets WHERE 1=1 AND requester_id = \\$1 AND status = \\$2").
		WithArgs("user-1", status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tickets, total, err := repo.ListTickets(context.Background(), models.SupportTicketFilter{
		RequesterID: "user-1",
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportRepositoryUpdateTicketStatusNotFound(t *testing.T) {
	db, mock, cleanup := newSupportMock(t)
	defer cleanup()
	repo := NewSupportRepository(db)

	mock.ExpectExec("UPDATE support_tickets SET status").
		WithArgs(models.TicketStatusResolved, sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTicketStatus(context.Background(), "missing", models.TicketStatusResolved)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportRepositoryFindAttachmentByID(t *testing.T) {
	db, mock, cleanup := newSupportMock(t)
	defer cleanup()
	repo := NewSupportRepository(db)

	rows := sqlmock.NewRows([]string{"id", "message_id", "file_name", "content_type", "size_bytes", "storage_key", "created_at"}).
		AddRow("att-1", "msg-1", "screenshot.png", "image/png", 2048, "uploads/screenshot.png", time.Now())

	mock.ExpectQuery("SELECT .+\\s+FROM support_attachments WHERE id = \\$1").
		WithArgs("att-1").
		WillReturnRows(rows)

	attachment, err := repo.FindAttachmentByID(context.Background(), "att-1")
	require.NoError(t, err)
	assert.Equal(t, "screenshot.png", attachment.FileName)
	assert.Equal(t, "uploads/screenshot.png", attachment.StorageKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportRepositoryInsertMessageTouchesTicket(t *testing.T) {
	db, mock, cleanup := newSupportMock(t)
	defer cleanup()
	repo := NewSupportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO support_messages").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE support_tickets SET updated_at").
		WithArgs(sqlmock.AnyArg(), "tic-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	message := &models.SupportMessage{
		TicketID:   "tic-1",
		AuthorID:   "user-1",
		AuthorRole: models.RoleParent,
		Body:       "Any update?",
	}
	err := repo.InsertMessage(context.Background(), message)
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
