// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narrator_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/platform/storage/storagetest"
	"github.com/taibuivan/navaadmin/internal/users/narrator"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

const (
	requestID = "0190a1b2-0000-7000-8000-0000000000b1"
	userID    = "0190a1b2-0000-7000-8000-0000000000c1"
	adminID   = "0190a1b2-0000-7000-8000-0000000000ad"
)

type fakeRepository struct {
	requests  map[string]*narrator.Request
	decisions []narrator.Decision
}

func (repo *fakeRepository) List(context.Context, string, int, int) ([]*narrator.Request, int, error) {
	return nil, 0, nil
}

func (repo *fakeRepository) Get(_ context.Context, id string) (*narrator.Request, error) {
	found, ok := repo.requests[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return found, nil
}

func (repo *fakeRepository) decide(id string, status narrator.Status, decision narrator.Decision) (*narrator.Request, error) {
	found, ok := repo.requests[id]
	if !ok || found.Status != narrator.StatusPending {
		return nil, apperr.Conflict("Request was already decided")
	}
	found.Status = status
	repo.decisions = append(repo.decisions, decision)
	return found, nil
}

func (repo *fakeRepository) Approve(_ context.Context, id string, decision narrator.Decision) (string, error) {
	found, err := repo.decide(id, narrator.StatusApproved, decision)
	if err != nil {
		return "", err
	}
	return found.UserID, nil
}

func (repo *fakeRepository) Reject(_ context.Context, id string, decision narrator.Decision) error {
	_, err := repo.decide(id, narrator.StatusRejected, decision)
	return err
}

type recordingInvalidator struct {
	users []string
}

func (invalidator *recordingInvalidator) Invalidate(_ context.Context, userID string) {
	invalidator.users = append(invalidator.users, userID)
}

func newFixture(sample *string) (*narrator.Service, *fakeRepository, *recordingInvalidator) {
	repo := &fakeRepository{requests: map[string]*narrator.Request{
		requestID: {ID: requestID, UserID: userID, Status: narrator.StatusPending, SampleAudioPath: sample},
	}}
	invalidator := &recordingInvalidator{}
	store := storagetest.NewMemory()
	return narrator.NewService(repo, invalidator, store, "narrator-samples", time.Hour), repo, invalidator
}

func adminContext() context.Context {
	return ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: adminID})
}

func TestService_ApproveInvalidatesRole(t *testing.T) {
	service, repo, invalidator := newFixture(nil)

	require.NoError(t, service.Approve(adminContext(), requestID, ""))

	assert.Equal(t, narrator.StatusApproved, repo.requests[requestID].Status)
	assert.Equal(t, []string{userID}, invalidator.users)
	require.Len(t, repo.decisions, 1)
	assert.Equal(t, adminID, pointer.Val(repo.decisions[0].ReviewerID))
	assert.Nil(t, repo.decisions[0].Note)
}

func TestService_ApproveTwiceConflicts(t *testing.T) {
	service, _, invalidator := newFixture(nil)
	require.NoError(t, service.Approve(adminContext(), requestID, ""))

	err := service.Approve(adminContext(), requestID, "")

	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Len(t, invalidator.users, 1)
}

func TestService_RejectRequiresNote(t *testing.T) {
	service, repo, _ := newFixture(nil)

	err := service.Reject(adminContext(), requestID, "   ")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, narrator.StatusPending, repo.requests[requestID].Status)

	require.NoError(t, service.Reject(adminContext(), requestID, " کیفیت صدا کافی نیست "))
	assert.Equal(t, narrator.StatusRejected, repo.requests[requestID].Status)
	assert.Equal(t, "کیفیت صدا کافی نیست", pointer.Val(repo.decisions[0].Note))
}

func TestService_SampleURL(t *testing.T) {
	service, _, _ := newFixture(pointer.To(userID + "/sample.mp3"))

	signed, err := service.SampleURL(context.Background(), requestID)

	require.NoError(t, err)
	assert.Contains(t, signed, "/sign/narrator-samples/"+userID+"/sample.mp3")
}

func TestService_SampleURLMissing(t *testing.T) {
	service, _, _ := newFixture(nil)

	_, err := service.SampleURL(context.Background(), requestID)

	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_ListRejectsUnknownStatus(t *testing.T) {
	service, _, _ := newFixture(nil)

	_, _, err := service.List(context.Background(), "archived", 20, 0)

	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestPostgresRepository_ApprovePromotesListener(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)UPDATE narrator_requests.*WHERE id = \$1 AND status = \$5.*RETURNING user_id`).
		WithArgs(requestID, narrator.StatusApproved, pgxmock.AnyArg(), pgxmock.AnyArg(), narrator.StatusPending).
		WillReturnRows(mock.NewRows([]string{"user_id"}).AddRow(userID))
	mock.ExpectExec(`(?s)UPDATE profiles SET role = \$2.*WHERE id = \$1 AND role = \$3`).
		WithArgs(userID, sec.RoleNarrator, sec.RoleListener).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := narrator.NewPostgresRepository(mock).Approve(context.Background(), requestID, narrator.Decision{})

	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ApproveDecidedRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)UPDATE narrator_requests`).
		WithArgs(requestID, narrator.StatusApproved, pgxmock.AnyArg(), pgxmock.AnyArg(), narrator.StatusPending).
		WillReturnRows(mock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	_, err = narrator.NewPostgresRepository(mock).Approve(context.Background(), requestID, narrator.Decision{})

	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
