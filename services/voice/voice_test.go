package voice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"servicehub/database"
	"servicehub/models"
	"servicehub/services/storage"
	"servicehub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	uploads map[string][]byte
	deleted []string
}

func (m *memStorage) UploadFile(context.Context, string, string) (storage.Upload, error) {
	return storage.Upload{}, errors.New("not used")
}

func (m *memStorage) UploadReader(_ context.Context, r io.Reader, filename, folder string) (storage.Upload, error) {
	b, _ := io.ReadAll(r)
	id := folder + "/" + filename
	m.uploads[id] = b
	return storage.Upload{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (m *memStorage) DeleteFile(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memStorage) GetDownloadURL(context.Context, string, string) (string, error) { return "", nil }

func (m *memStorage) UploadEncryptedFile(context.Context, string, string, string) (storage.Upload, error) {
	return storage.Upload{}, nil
}

type memRepo struct {
	mu   sync.Mutex
	reqs map[string]models.VoiceRequest
}

func (r *memRepo) Create(_ context.Context, req *models.VoiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs[req.ID] = *req
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.VoiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &req, nil
}

func (r *memRepo) ListByUser(_ context.Context, userID string) ([]models.VoiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VoiceRequest
	for _, req := range r.reqs {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memRepo) update(id string, f func(*models.VoiceRequest)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return database.ErrNotFound
	}
	f(&req)
	r.reqs[id] = req
	return nil
}

func (r *memRepo) MarkProcessing(_ context.Context, id string) error {
	return r.update(id, func(v *models.VoiceRequest) { v.Status = models.VoiceProcessing })
}

func (r *memRepo) Complete(_ context.Context, id, transcription string, s models.StructuredRequest) error {
	return r.update(id, func(v *models.VoiceRequest) {
		v.Status = models.VoiceCompleted
		v.Transcription = transcription
		v.Summary = s.Summary
		v.ServiceHint = s.ServiceHint
	})
}

func (r *memRepo) Fail(_ context.Context, id, reason string) error {
	return r.update(id, func(v *models.VoiceRequest) {
		v.Status = models.VoiceFailed
		v.Error = reason
	})
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, t *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, t)
	return &asynq.TaskInfo{ID: "t1"}, nil
}

type fakeTranscriber struct {
	text string
	err  error
	path string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path, _ string) (string, error) {
	f.path = path
	return f.text, f.err
}

type fakeStructurer struct{ err error }

func (f fakeStructurer) Structure(_ context.Context, transcript string) (models.StructuredRequest, error) {
	if f.err != nil {
		return models.StructuredRequest{}, f.err
	}
	return models.StructuredRequest{Summary: "Needs: " + transcript, ServiceHint: "Plumbing"}, nil
}

type fixture struct {
	svc     *DefaultVoiceService
	storage *memStorage
	repo    *memRepo
	queue   *fakeQueue
	stt     *fakeTranscriber
}

func newFixture() *fixture {
	f := &fixture{
		storage: &memStorage{uploads: map[string][]byte{}},
		repo:    &memRepo{reqs: map[string]models.VoiceRequest{}},
		queue:   &fakeQueue{},
		stt:     &fakeTranscriber{text: "my sink is blocked"},
	}
	f.svc = NewDefaultVoiceService(f.storage, f.repo, f.queue, nil)
	f.svc.Transcriber = f.stt
	f.svc.Structurer = fakeStructurer{}
	f.svc.Download = func(_ context.Context, url string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("audio-bytes")), nil
	}
	return f
}

func TestSubmit_UploadsRecordsAndQueues(t *testing.T) {
	f := newFixture()

	req, err := f.svc.Submit(context.Background(), "u1", "note.M4A", bytes.NewReader([]byte("audio")))
	require.NoError(t, err)

	assert.Equal(t, models.VoicePending, req.Status)
	assert.True(t, strings.HasPrefix(req.AudioURL, "https://cdn.test/"+storage.FolderVoice))
	stored, err := f.repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, tasks.TypeProcessVoice, f.queue.tasks[0].Type())
	assert.Contains(t, string(f.queue.tasks[0].Payload()), req.ID)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, "u1", "note.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyAudio)

	_, err = f.svc.Submit(ctx, "u1", "note.wav", bytes.NewReader(make([]byte, MaxFileSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.Empty(t, f.storage.uploads)
}

func TestSubmit_EnqueueFailureMarksFailed(t *testing.T) {
	f := newFixture()
	f.queue.err = errors.New("redis down")

	req, err := f.svc.Submit(context.Background(), "u1", "note.wav", strings.NewReader("audio"))
	require.ErrorIs(t, err, ErrEnqueue)
	require.NotNil(t, req)
	assert.Equal(t, models.VoiceFailed, req.Status)

	stored, err := f.repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoiceFailed, stored.Status)
	assert.Contains(t, stored.Error, "redis down")
}

func TestProcess_CompletesRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Process(ctx, models.VoiceTaskPayload{RequestID: req.ID, AudioURL: req.AudioURL}))

	got, err := f.svc.Get(ctx, "u1", req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoiceCompleted, got.Status)
	assert.Equal(t, "my sink is blocked", got.Transcription)
	assert.Equal(t, "Needs: my sink is blocked", got.Summary)
	assert.Equal(t, "Plumbing", got.ServiceHint)
	assert.NotEmpty(t, f.stt.path)
}

func TestProcess_StructuringFailureKeepsTranscript(t *testing.T) {
	f := newFixture()
	f.svc.Structurer = fakeStructurer{err: errors.New("quota")}
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Process(ctx, models.VoiceTaskPayload{RequestID: req.ID, AudioURL: req.AudioURL}))

	got, _ := f.repo.GetByID(ctx, req.ID)
	assert.Equal(t, models.VoiceCompleted, got.Status)
	assert.Equal(t, "my sink is blocked", got.Summary)
}

func TestProcess_NoSpeechSkipsRetry(t *testing.T) {
	f := newFixture()
	f.stt.text = "  "
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	err = f.svc.Process(ctx, models.VoiceTaskPayload{RequestID: req.ID, AudioURL: req.AudioURL})
	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	got, _ := f.repo.GetByID(ctx, req.ID)
	assert.Equal(t, models.VoiceFailed, got.Status)
}

func TestProcess_TranscriptionErrorIsRetried(t *testing.T) {
	f := newFixture()
	f.stt.err = errors.New("speech api unavailable")
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	err = f.svc.Process(ctx, models.VoiceTaskPayload{RequestID: req.ID, AudioURL: req.AudioURL})
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestGet_OtherUsersRequestIsHidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req, err := f.svc.Submit(ctx, "u1", "note.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "u2", req.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = f.svc.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
