package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"servicehub/models"
	"servicehub/services/notification"
	"servicehub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	err   error
	calls []string
}

func (f *fakeNotifier) RegisterDevice(context.Context, string, string) error { return nil }

func (f *fakeNotifier) NotifyUser(_ context.Context, userID, title, _ string, data map[string]string) error {
	f.calls = append(f.calls, userID+"|"+title+"|"+data["bookingId"])
	return f.err
}

type fakeVoice struct {
	got models.VoiceTaskPayload
}

func (f *fakeVoice) Process(_ context.Context, p models.VoiceTaskPayload) error {
	f.got = p
	return nil
}

func TestReminderTask_Notifies(t *testing.T) {
	n := &fakeNotifier{}
	task, _, err := tasks.NewReminderTask(models.ReminderPayload{UserID: "u1", BookingID: "b1", Title: "Tomorrow", StartsAt: time.Now().Add(48 * time.Hour)}, time.Now())
	require.NoError(t, err)

	require.NoError(t, handleReminderTask(n, zap.NewNop())(context.Background(), task))
	assert.Equal(t, []string{"u1|Tomorrow|b1"}, n.calls)
}

func TestReminderTask_NoDeviceIsNotRetried(t *testing.T) {
	n := &fakeNotifier{err: fmt.Errorf("NotifyUser: %w", notification.ErrNoDeviceToken)}
	task, _, err := tasks.NewReminderTask(models.ReminderPayload{UserID: "u1", BookingID: "b2", StartsAt: time.Now().Add(48 * time.Hour)}, time.Now())
	require.NoError(t, err)

	assert.NoError(t, handleReminderTask(n, zap.NewNop())(context.Background(), task))
}

func TestReminderTask_StartedBookingIsDropped(t *testing.T) {
	n := &fakeNotifier{}
	b, err := json.Marshal(models.ReminderPayload{UserID: "u1", BookingID: "b3", StartsAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)

	require.NoError(t, handleReminderTask(n, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeSendReminder, b)))
	assert.Empty(t, n.calls)
}

func TestReminderTask_BadPayloadSkipsRetry(t *testing.T) {
	err := handleReminderTask(&fakeNotifier{}, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestVoiceTask_Dispatches(t *testing.T) {
	v := &fakeVoice{}
	task, _, err := tasks.NewVoiceTask(models.VoiceTaskPayload{RequestID: "r1", AudioURL: "https://cdn/a.m4a"})
	require.NoError(t, err)

	require.NoError(t, handleVoiceTask(v, zap.NewNop())(context.Background(), task))
	assert.Equal(t, "r1", v.got.RequestID)
}
