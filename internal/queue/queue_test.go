package queue

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// kycDecisionPayload mirrors the notification job payload shape
type kycDecisionPayload struct {
	DocumentID string `json:"document_id"`
	NewStatus  string `json:"new_status"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Job{}))

	return db
}

func TestEnqueueJob(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	payload := kycDecisionPayload{
		DocumentID: uuid.New().String(),
		NewStatus:  "approved",
	}

	jobID, err := q.EnqueueJob(JobTypeNotifyKycDecision, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	var job Job
	require.NoError(t, db.Where("id = ?", jobID).First(&job).Error)
	assert.Equal(t, JobTypeNotifyKycDecision, job.Type)
	assert.Equal(t, JobStatusPending, job.Status)

	var stored kycDecisionPayload
	require.NoError(t, json.Unmarshal(job.Payload, &stored))
	assert.Equal(t, payload.DocumentID, stored.DocumentID)
	assert.Equal(t, payload.NewStatus, stored.NewStatus)
}

func TestGetJob(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	jobID := uuid.New()
	job := Job{
		ID:        jobID,
		Type:      JobTypeNotifyRefundProcessed,
		Payload:   []byte(`{"refund_id": "abc"}`),
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&job).Error)

	retrieved, err := q.GetJob(jobID.String())
	require.NoError(t, err)
	assert.Equal(t, jobID, retrieved.ID)
	assert.Equal(t, JobTypeNotifyRefundProcessed, retrieved.Type)

	_, err = q.GetJob(uuid.New().String())
	assert.Error(t, err)
}

func TestUpdateJobStatus(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	jobID := uuid.New()
	job := Job{
		ID:        jobID,
		Type:      JobTypeNotifyKycDecision,
		Payload:   []byte(`{}`),
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&job).Error)

	require.NoError(t, q.UpdateJobStatus(jobID.String(), JobStatusCompleted, nil, nil))

	var updated Job
	require.NoError(t, db.Where("id = ?", jobID).First(&updated).Error)
	assert.Equal(t, JobStatusCompleted, updated.Status)
	assert.Empty(t, updated.Error)

	errMsg := "notification delivery failed"
	require.NoError(t, q.UpdateJobStatus(jobID.String(), JobStatusFailed, nil, errors.New(errMsg)))

	require.NoError(t, db.Where("id = ?", jobID).First(&updated).Error)
	assert.Equal(t, JobStatusFailed, updated.Status)
	assert.Equal(t, errMsg, updated.Error)
}

func TestRetryHandlerSchedulesBackoff(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)
	h := NewRetryHandler(db, q)

	job := Job{
		ID:        uuid.New(),
		Type:      JobTypeNotifyKycDecision,
		Payload:   []byte(`{}`),
		Status:    JobStatusProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&job).Error)

	h.HandleFailedJob(job, errors.New("temporary failure"))

	var updated Job
	require.NoError(t, db.Where("id = ?", job.ID).First(&updated).Error)
	assert.Equal(t, JobStatus("retry_scheduled"), updated.Status)
	assert.Equal(t, 1, updated.RetryCount)
	require.NotNil(t, updated.NextRetry)
	assert.True(t, updated.NextRetry.After(time.Now()))
}

func TestRetryHandlerExhaustsRetries(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)
	h := NewRetryHandler(db, q)

	job := Job{
		ID:         uuid.New(),
		Type:       JobTypeNotifyRefundProcessed,
		Payload:    []byte(`{}`),
		Status:     JobStatusProcessing,
		RetryCount: 5,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, db.Create(&job).Error)

	h.HandleFailedJob(job, errors.New("permanent failure"))

	var updated Job
	require.NoError(t, db.Where("id = ?", job.ID).First(&updated).Error)
	assert.Equal(t, JobStatusFailed, updated.Status)
	assert.Contains(t, updated.Error, "Exceeded max retries")
}

func TestCalculateBackoff(t *testing.T) {
	db := setupTestDB(t)
	h := NewRetryHandler(db, NewQueue(db))

	assert.Equal(t, 30*time.Second, h.calculateBackoff(1))
	assert.Equal(t, 60*time.Second, h.calculateBackoff(2))
	assert.Equal(t, 120*time.Second, h.calculateBackoff(3))
}

func TestStartStopProcessingConcurrent(t *testing.T) {
	db := setupTestDB(t)
	q := NewQueue(db)

	// start and stop from separate goroutines; the flag must stay
	// race-free and repeated starts must be no-ops
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.StartProcessing()
		}()
	}
	wg.Wait()

	assert.True(t, q.processing.Load())

	done := make(chan struct{})
	go func() {
		q.StopProcessing()
		close(done)
	}()
	<-done

	assert.False(t, q.processing.Load())
	require.NoError(t, q.Close())
}
