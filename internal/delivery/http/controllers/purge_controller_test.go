package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type fakePurgeService struct {
	result   domain.PurgeResult
	err      error
	runs     int
	previews int
}

func (f *fakePurgeService) RunPurge(ctx context.Context) (domain.PurgeResult, error) {
	f.runs++
	return f.result, f.err
}

func (f *fakePurgeService) Preview(ctx context.Context) (domain.PurgeResult, error) {
	f.previews++
	return f.result, f.err
}

func TestPurgeController_RunPurge(t *testing.T) {
	t.Run("runs the purge", func(t *testing.T) {
		svc := &fakePurgeService{result: domain.PurgeResult{UnsubmittedDeleted: 3, UnconfirmedCanceled: 1}}
		ctrl := NewPurgeController(testLogger, svc)
		rr := httptest.NewRecorder()
		ctrl.RunPurge(rr, httptest.NewRequest(http.MethodPost, "/admin/purge", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body PurgeSuccessResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, svc.result, body.Data)
		assert.Equal(t, 1, svc.runs)
		assert.Zero(t, svc.previews)
	})

	t.Run("dry run previews", func(t *testing.T) {
		svc := &fakePurgeService{}
		ctrl := NewPurgeController(testLogger, svc)
		rr := httptest.NewRecorder()
		ctrl.RunPurge(rr, httptest.NewRequest(http.MethodPost, "/admin/purge?dry_run=true", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Zero(t, svc.runs)
		assert.Equal(t, 1, svc.previews)
	})

	t.Run("bad dry run flag", func(t *testing.T) {
		ctrl := NewPurgeController(testLogger, &fakePurgeService{})
		rr := httptest.NewRecorder()
		ctrl.RunPurge(rr, httptest.NewRequest(http.MethodPost, "/admin/purge?dry_run=maybe", nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := NewPurgeController(testLogger, &fakePurgeService{err: domain.ErrStorageUnavailable})
		rr := httptest.NewRecorder()
		ctrl.RunPurge(rr, httptest.NewRequest(http.MethodPost, "/admin/purge", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		assert.Equal(t, helpers.ErrCodeServiceUnavailable, envelope.Error.Code)
	})
}
