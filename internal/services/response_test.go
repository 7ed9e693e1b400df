package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
)

type responseServiceEnv struct {
	svc          ResponseServiceInterface
	requestRepo  *fakeRequestRepo
	responseRepo *fakeResponseRepo
	historyRepo  *fakeHistoryRepo
}

func newResponseServiceEnv() *responseServiceEnv {
	requestRepo := newFakeRequestRepo()
	responseRepo := newFakeResponseRepo()
	historyRepo := &fakeHistoryRepo{}
	logger := zap.NewNop()

	svc := NewResponseService(
		responseRepo,
		requestRepo,
		NewRequestHistoryService(historyRepo, logger),
		&fakeAttachments{},
		logger,
	)

	return &responseServiceEnv{
		svc:          svc,
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		historyRepo:  historyRepo,
	}
}

func TestCreateResponseCompletesNewRequest(t *testing.T) {
	env := newResponseServiceEnv()
	requestID := env.requestRepo.seed(&entities.Request{
		Header:   "Сломался монитор",
		Text:     "Монитор не включается",
		StatusID: constants.RequestStatusNew,
	})

	id, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "Монитор заменён",
		RequestID: requestID,
		StatusID:  constants.ResponseStatusAccepted,
	}, nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	assert.Equal(t, constants.RequestStatusCompleted, env.requestRepo.requests[requestID].StatusID)
	assert.Equal(t, testActorID, env.responseRepo.lastAuthorID)
	require.Len(t, env.historyRepo.records, 1)
	assert.Equal(t, "Изменение статуса", env.historyRepo.records[0].Action)
}

func TestCreateResponseKeepsNonNewStatus(t *testing.T) {
	env := newResponseServiceEnv()
	requestID := env.requestRepo.seed(&entities.Request{
		Header:   "x",
		Text:     "y",
		StatusID: constants.RequestStatusOnHold,
	})

	_, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "готово",
		RequestID: requestID,
		StatusID:  constants.ResponseStatusAccepted,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.RequestStatusOnHold, env.requestRepo.requests[requestID].StatusID)
	assert.Empty(t, env.historyRepo.records)
}

func TestCreateResponseUnknownStatus(t *testing.T) {
	env := newResponseServiceEnv()
	requestID := env.requestRepo.seed(&entities.Request{
		Header: "x", Text: "y", StatusID: constants.RequestStatusNew,
	})

	_, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "ответ",
		RequestID: requestID,
		StatusID:  777,
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestChangeResponseStatus(t *testing.T) {
	env := newResponseServiceEnv()
	requestID := env.requestRepo.seed(&entities.Request{
		Header: "x", Text: "y", StatusID: constants.RequestStatusOnHold,
	})
	id, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "ответ",
		RequestID: requestID,
		StatusID:  constants.ResponseStatusAccepted,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, env.svc.ChangeResponseStatus(actorContext(), id, constants.ResponseStatusDenied))
	assert.Equal(t, constants.ResponseStatusDenied, env.responseRepo.responses[requestID].StatusID)

	t.Run("неизвестный статус", func(t *testing.T) {
		err := env.svc.ChangeResponseStatus(actorContext(), id, 777)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})
}

func TestDeleteResponse(t *testing.T) {
	env := newResponseServiceEnv()
	requestID := env.requestRepo.seed(&entities.Request{
		Header: "x", Text: "y", StatusID: constants.RequestStatusOnHold,
	})
	id, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "ответ",
		RequestID: requestID,
		StatusID:  constants.ResponseStatusAccepted,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteResponse(actorContext(), id))

	_, err = env.svc.GetResponseByRequestID(actorContext(), requestID)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)

	err = env.svc.DeleteResponse(actorContext(), id)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestCreateResponseRequestNotFound(t *testing.T) {
	env := newResponseServiceEnv()

	_, err := env.svc.CreateResponse(actorContext(), dto.CreateResponseDTO{
		Text:      "ответ",
		RequestID: 555,
		StatusID:  constants.ResponseStatusAccepted,
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}
