// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/core/content"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/platform/storage/storagetest"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

const (
	audiobookID = "0190a1b2-0000-7000-8000-0000000000a1"
	adminID     = "0190a1b2-0000-7000-8000-0000000000ad"
	creatorID   = "0190a1b2-0000-7000-8000-0000000000c1"
)

var buckets = storage.Buckets{
	Covers:        "audiobook-covers",
	Audio:         "audiobook-audio",
	Ebooks:        "ebook-files",
	ProfileImages: "profile-images",
}

type fakeRepository struct {
	stored     map[string]*content.Audiobook
	audioPaths []string
	credits    []content.CreatorCredit
	categories []string
	musical    bool
	book       *content.BookMetadata

	lastChange   content.StatusChange
	setCoverErr  error
	replaceErr   error
	statusRaced  bool
	deleteCalled bool
}

func newFakeRepository(items ...*content.Audiobook) *fakeRepository {
	repo := &fakeRepository{stored: map[string]*content.Audiobook{}}
	for _, item := range items {
		repo.stored[item.ID] = item
	}
	return repo
}

func (repo *fakeRepository) List(context.Context, content.Filter, int, int) ([]*content.Audiobook, int, error) {
	return nil, 0, nil
}

func (repo *fakeRepository) Get(_ context.Context, id string) (*content.Audiobook, error) {
	item, ok := repo.stored[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (repo *fakeRepository) GetDetail(ctx context.Context, id string) (*content.Detail, error) {
	item, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &content.Detail{Audiobook: item, Creators: repo.credits}, nil
}

func (repo *fakeRepository) Create(_ context.Context, item *content.Audiobook) error {
	item.ID = audiobookID
	repo.stored[item.ID] = item
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, item *content.Audiobook) error {
	repo.stored[item.ID] = item
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	repo.deleteCalled = true
	delete(repo.stored, id)
	return nil
}

func (repo *fakeRepository) UpdateStatus(_ context.Context, id string, from content.Status, change content.StatusChange) error {
	item := repo.stored[id]
	if repo.statusRaced || item.Status != from {
		return apperr.Conflict("Content status changed in the meantime, reload and try again")
	}
	repo.lastChange = change
	item.Status = change.To
	item.RejectionReason = change.RejectionReason
	if change.MarkReviewed {
		item.ReviewedBy = change.ReviewedBy
		item.ReviewedAt = pointer.To(time.Now())
	}
	if change.MarkSubmitted {
		item.SubmittedAt = pointer.To(time.Now())
	}
	return nil
}

func (repo *fakeRepository) SetFlags(_ context.Context, item *content.Audiobook) error {
	repo.stored[item.ID] = item
	return nil
}

func (repo *fakeRepository) SetCover(_ context.Context, id string, coverURL *string) error {
	if repo.setCoverErr != nil {
		return repo.setCoverErr
	}
	repo.stored[id].CoverURL = coverURL
	return nil
}

func (repo *fakeRepository) SetEbook(_ context.Context, id string, ebookPath *string) error {
	repo.stored[id].EbookPath = ebookPath
	return nil
}

func (repo *fakeRepository) ChapterAudioPaths(context.Context, string) ([]string, error) {
	return repo.audioPaths, nil
}

func (repo *fakeRepository) ReplaceCreators(_ context.Context, _ string, credits []content.CreatorCredit) error {
	if repo.replaceErr != nil {
		return repo.replaceErr
	}
	repo.credits = credits
	return nil
}

func (repo *fakeRepository) ReplaceCategories(_ context.Context, _ string, musical bool, categoryIDs []string) error {
	if repo.replaceErr != nil {
		return repo.replaceErr
	}
	repo.musical = musical
	repo.categories = categoryIDs
	return nil
}

func (repo *fakeRepository) UpsertBookMetadata(_ context.Context, _ string, metadata *content.BookMetadata) error {
	repo.book = metadata
	return nil
}

func (repo *fakeRepository) UpsertMusicMetadata(context.Context, string, *content.MusicMetadata) error {
	return nil
}

func newService(repo content.Repository, store *storagetest.Memory) *content.Service {
	janitor := storage.NewJanitor(store, nil, slog.New(slog.DiscardHandler))
	return content.NewService(repo, store, janitor, buckets, time.Hour)
}

func adminContext() context.Context {
	return ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: adminID, AppRole: sec.RoleAdmin})
}

func item(status content.Status, contentType content.Type) *content.Audiobook {
	return &content.Audiobook{ID: audiobookID, TitleFa: "بوف کور", ContentType: contentType, Status: status}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	return ae.Code
}

// # Lifecycle

func TestService_CreateStartsAsDraft(t *testing.T) {
	service := newService(newFakeRepository(), storagetest.NewMemory())

	created, err := service.Create(context.Background(), content.Input{
		TitleFa:     pointer.To("  بوف كور "),
		ContentType: pointer.To("book"),
	})

	require.NoError(t, err)
	assert.Equal(t, content.StatusDraft, created.Status)
	assert.Equal(t, "بوف کور", created.TitleFa)
}

func TestService_CreateValidation(t *testing.T) {
	service := newService(newFakeRepository(), storagetest.NewMemory())

	_, err := service.Create(context.Background(), content.Input{ContentType: pointer.To("video")})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

func TestService_UpdateContentTypeOnlyInDraft(t *testing.T) {
	repo := newFakeRepository(item(content.StatusApproved, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())

	_, err := service.Update(context.Background(), audiobookID, content.Input{ContentType: pointer.To("music")})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))

	repo.stored[audiobookID].Status = content.StatusDraft
	updated, err := service.Update(context.Background(), audiobookID, content.Input{ContentType: pointer.To("music")})
	require.NoError(t, err)
	assert.Equal(t, content.TypeMusic, updated.ContentType)
}

// # Workflow

func TestService_TransitionFullReview(t *testing.T) {
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())
	ctx := adminContext()

	for _, next := range []content.Status{content.StatusSubmitted, content.StatusUnderReview, content.StatusApproved} {
		_, err := service.Transition(ctx, audiobookID, content.TransitionInput{Status: next})
		require.NoError(t, err, "moving to %s", next)
	}

	stored := repo.stored[audiobookID]
	assert.Equal(t, content.StatusApproved, stored.Status)
	assert.NotNil(t, stored.SubmittedAt)
	assert.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, adminID, pointer.Val(stored.ReviewedBy))
}

func TestService_TransitionIllegalMove(t *testing.T) {
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypeBook)), storagetest.NewMemory())

	_, err := service.Transition(adminContext(), audiobookID, content.TransitionInput{Status: content.StatusApproved})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

func TestService_RejectRequiresReason(t *testing.T) {
	repo := newFakeRepository(item(content.StatusUnderReview, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())

	_, err := service.Transition(adminContext(), audiobookID, content.TransitionInput{Status: content.StatusRejected, Reason: "  "})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))

	rejected, err := service.Transition(adminContext(), audiobookID, content.TransitionInput{Status: content.StatusRejected, Reason: "کیفیت صدا پایین است"})
	require.NoError(t, err)
	assert.Equal(t, "کیفیت صدا پایین است", pointer.Val(rejected.RejectionReason))
}

func TestService_ApproveClearsRejectionReason(t *testing.T) {
	under := item(content.StatusUnderReview, content.TypeBook)
	under.RejectionReason = pointer.To("old reason")
	repo := newFakeRepository(under)
	service := newService(repo, storagetest.NewMemory())

	approved, err := service.Transition(adminContext(), audiobookID, content.TransitionInput{Status: content.StatusApproved})

	require.NoError(t, err)
	assert.Nil(t, approved.RejectionReason)
}

func TestService_TransitionMachineCallerHasNoReviewer(t *testing.T) {
	repo := newFakeRepository(item(content.StatusUnderReview, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())
	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{Machine: true, AppRole: sec.RoleAdmin})

	_, err := service.Transition(ctx, audiobookID, content.TransitionInput{Status: content.StatusApproved})

	require.NoError(t, err)
	assert.Nil(t, repo.lastChange.ReviewedBy)
}

func TestService_TransitionRace(t *testing.T) {
	repo := newFakeRepository(item(content.StatusSubmitted, content.TypeBook))
	repo.statusRaced = true
	service := newService(repo, storagetest.NewMemory())

	_, err := service.Transition(adminContext(), audiobookID, content.TransitionInput{Status: content.StatusUnderReview})

	assert.Equal(t, "CONFLICT", errorCode(t, err))
}

// # Flags

func TestService_SetFlagsFreeForcesZeroPrice(t *testing.T) {
	repo := newFakeRepository(item(content.StatusApproved, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())

	updated, err := service.SetFlags(context.Background(), audiobookID, content.FlagsInput{
		Price:  pointer.To(120000.0),
		IsFree: pointer.To(true),
	})

	require.NoError(t, err)
	assert.Zero(t, updated.Price)
	assert.True(t, updated.IsFree)
}

func TestService_SetFlagsNegativePrice(t *testing.T) {
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypeBook)), storagetest.NewMemory())

	_, err := service.SetFlags(context.Background(), audiobookID, content.FlagsInput{Price: pointer.To(-1.0)})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

// # Files

func TestService_UploadCoverReplacesPrevious(t *testing.T) {
	store := storagetest.NewMemory(buckets.Covers + "/" + audiobookID + "/old.jpg")
	existing := item(content.StatusDraft, content.TypeBook)
	existing.CoverURL = pointer.To(store.PublicURL(buckets.Covers, audiobookID+"/old.jpg"))
	service := newService(newFakeRepository(existing), store)

	updated, err := service.UploadCover(context.Background(), audiobookID, storage.FileFromBytes("cover.jpg", []byte("jpeg")))

	require.NoError(t, err)
	assert.False(t, store.Has(buckets.Covers, audiobookID+"/old.jpg"))
	assert.Equal(t, 1, store.Len())

	newPath, ok := storage.PathFromPublicURL(buckets.Covers, pointer.Val(updated.CoverURL))
	require.True(t, ok)
	assert.True(t, store.Has(buckets.Covers, newPath))
}

func TestService_UploadCoverRowFailureDiscardsObject(t *testing.T) {
	store := storagetest.NewMemory()
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	repo.setCoverErr = apperr.Database("connection reset", nil)
	service := newService(repo, store)

	_, err := service.UploadCover(context.Background(), audiobookID, storage.FileFromBytes("cover.png", []byte("png")))

	require.Error(t, err)
	assert.Equal(t, 1, store.Uploads)
	assert.Zero(t, store.Len())
}

func TestService_UploadCoverRejectsAudio(t *testing.T) {
	store := storagetest.NewMemory()
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypeBook)), store)

	_, err := service.UploadCover(context.Background(), audiobookID, storage.FileFromBytes("track.mp3", []byte("id3")))

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	assert.Zero(t, store.Uploads)
}

func TestService_UploadEbookOnlyForBooks(t *testing.T) {
	store := storagetest.NewMemory()
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypePodcast)), store)

	_, err := service.UploadEbook(context.Background(), audiobookID, storage.FileFromBytes("book.pdf", []byte("%PDF")))

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	assert.Zero(t, store.Uploads)
}

func TestService_EbookURL(t *testing.T) {
	store := storagetest.NewMemory()
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	service := newService(repo, store)

	_, err := service.EbookURL(context.Background(), audiobookID)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	uploaded, err := service.UploadEbook(context.Background(), audiobookID, storage.FileFromBytes("book.epub", []byte("PK")))
	require.NoError(t, err)

	signedURL, err := service.EbookURL(context.Background(), audiobookID)
	require.NoError(t, err)
	assert.Contains(t, signedURL, "/sign/"+buckets.Ebooks+"/"+pointer.Val(uploaded.EbookPath))
}

// # Delete

func TestService_DeleteRemovesAllObjects(t *testing.T) {
	store := storagetest.NewMemory(
		buckets.Covers+"/"+audiobookID+"/cover.jpg",
		buckets.Ebooks+"/"+audiobookID+"/book.pdf",
		buckets.Audio+"/"+audiobookID+"/1.mp3",
		buckets.Audio+"/"+audiobookID+"/2.mp3",
	)
	existing := item(content.StatusApproved, content.TypeBook)
	existing.CoverURL = pointer.To(store.PublicURL(buckets.Covers, audiobookID+"/cover.jpg"))
	existing.EbookPath = pointer.To(audiobookID + "/book.pdf")

	repo := newFakeRepository(existing)
	repo.audioPaths = []string{audiobookID + "/1.mp3", audiobookID + "/2.mp3"}
	service := newService(repo, store)

	require.NoError(t, service.Delete(context.Background(), audiobookID))

	assert.True(t, repo.deleteCalled)
	assert.Zero(t, store.Len())
}

func TestService_DeleteSucceedsWhenStorageFails(t *testing.T) {
	store := storagetest.NewMemory(buckets.Audio + "/" + audiobookID + "/1.mp3")
	store.FailRemove = true
	repo := newFakeRepository(item(content.StatusDraft, content.TypeMusic))
	repo.audioPaths = []string{audiobookID + "/1.mp3"}
	service := newService(repo, store)

	require.NoError(t, service.Delete(context.Background(), audiobookID))

	assert.True(t, repo.deleteCalled)
	assert.True(t, store.Has(buckets.Audio, audiobookID+"/1.mp3"))
}

// # Relations

func TestService_ReplaceCreatorsAssignsOrder(t *testing.T) {
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())

	err := service.ReplaceCreators(context.Background(), audiobookID, []content.CreatorCredit{
		{CreatorID: creatorID, Role: "author"},
		{CreatorID: creatorID, Role: " narrator "},
	})

	require.NoError(t, err)
	require.Len(t, repo.credits, 2)
	assert.Equal(t, 1, repo.credits[0].SortOrder)
	assert.Equal(t, "narrator", repo.credits[1].Role)
	assert.Equal(t, 2, repo.credits[1].SortOrder)
}

func TestService_ReplaceCreatorsRejectsDuplicates(t *testing.T) {
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypeBook)), storagetest.NewMemory())

	err := service.ReplaceCreators(context.Background(), audiobookID, []content.CreatorCredit{
		{CreatorID: creatorID, Role: "author"},
		{CreatorID: creatorID, Role: "author"},
	})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

func TestService_ReplaceCreatorsUnknownCreator(t *testing.T) {
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	repo.replaceErr = apperr.Conflict("Record is referenced by other records")
	service := newService(repo, storagetest.NewMemory())

	err := service.ReplaceCreators(context.Background(), audiobookID, []content.CreatorCredit{{CreatorID: creatorID, Role: "author"}})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}

func TestService_ReplaceCategoriesUsesMusicTable(t *testing.T) {
	repo := newFakeRepository(item(content.StatusDraft, content.TypeMusic))
	service := newService(repo, storagetest.NewMemory())

	require.NoError(t, service.ReplaceCategories(context.Background(), audiobookID, []string{creatorID}))
	assert.True(t, repo.musical)
	assert.Equal(t, []string{creatorID}, repo.categories)
}

func TestService_UpsertBookMetadata(t *testing.T) {
	repo := newFakeRepository(item(content.StatusDraft, content.TypeBook))
	service := newService(repo, storagetest.NewMemory())

	saved, err := service.UpsertBookMetadata(context.Background(), audiobookID, content.BookMetadata{
		ISBN:        pointer.To("۹۷۸-۶۰۰-۱۲۳"),
		Publisher:   pointer.To("   "),
		PublishYear: pointer.To(1999),
	})

	require.NoError(t, err)
	assert.Equal(t, "978-600-123", pointer.Val(saved.ISBN))
	assert.Nil(t, saved.Publisher)
	assert.Same(t, repo.book, saved)
}

func TestService_UpsertMusicMetadataWrongType(t *testing.T) {
	service := newService(newFakeRepository(item(content.StatusDraft, content.TypeBook)), storagetest.NewMemory())

	_, err := service.UpsertMusicMetadata(context.Background(), audiobookID, content.MusicMetadata{Genre: pointer.To("پاپ")})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
}
