package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"eventregistration/internal/domain"
)

type stubPurge struct {
	result   domain.PurgeResult
	err      error
	runs     int
	previews int
}

func (s *stubPurge) RunPurge(context.Context) (domain.PurgeResult, error) {
	s.runs++
	return s.result, s.err
}

func (s *stubPurge) Preview(context.Context) (domain.PurgeResult, error) {
	s.previews++
	return s.result, s.err
}

func openStub(svc domain.PurgeService) openFunc {
	return func(context.Context) (domain.PurgeService, func(), error) {
		return svc, func() {}, nil
	}
}

func TestPurgeCLI(t *testing.T) {
	t.Run("run prints both counts", func(t *testing.T) {
		svc := &stubPurge{result: domain.PurgeResult{UnsubmittedDeleted: 4, UnconfirmedCanceled: 2}}
		var out bytes.Buffer
		require.NoError(t, newApp(openStub(svc), &out).Run([]string{"purge", "run"}))

		assert.Equal(t, "4 unsubmitted registrations were permanently deleted.\n2 unconfirmed registrations were canceled.\n", out.String())
		assert.Equal(t, 1, svc.runs)
	})

	t.Run("json output", func(t *testing.T) {
		svc := &stubPurge{result: domain.PurgeResult{UnsubmittedDeleted: 1}}
		var out bytes.Buffer
		require.NoError(t, newApp(openStub(svc), &out).Run([]string{"purge", "run", "--json"}))
		assert.JSONEq(t, `{"unsubmitted_deleted":1,"unconfirmed_canceled":0}`, out.String())
	})

	t.Run("preview does not run", func(t *testing.T) {
		svc := &stubPurge{}
		var out bytes.Buffer
		require.NoError(t, newApp(openStub(svc), &out).Run([]string{"purge", "preview"}))
		assert.Contains(t, out.String(), "would be canceled")
		assert.Zero(t, svc.runs)
		assert.Equal(t, 1, svc.previews)
	})

	t.Run("storage failure exits non-zero", func(t *testing.T) {
		svc := &stubPurge{result: domain.PurgeResult{UnconfirmedCanceled: 3}, err: domain.ErrStorageUnavailable}
		var out bytes.Buffer
		err := newApp(openStub(svc), &out).Run([]string{"purge", "run"})

		var exit cli.ExitCoder
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 1, exit.ExitCode())
		assert.Contains(t, out.String(), "3 unconfirmed registrations were canceled.")
	})

	t.Run("open failure", func(t *testing.T) {
		open := func(context.Context) (domain.PurgeService, func(), error) {
			return nil, nil, errors.New("no database")
		}
		err := newApp(open, &bytes.Buffer{}).Run([]string{"purge", "run"})
		var exit cli.ExitCoder
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 2, exit.ExitCode())
	})
}
