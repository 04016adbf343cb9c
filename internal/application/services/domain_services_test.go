package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpdomain "momfit.app/cli/internal/core/domain/http"
	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
	"momfit.app/cli/test/testutil"
)

func loggedInStack(t *testing.T, server *testutil.MockAPIServer) *testStack {
	t.Helper()
	stack := newTestStack(t, server)
	require.NoError(t, stack.auth.Login(context.Background(), "mom@example.com", "secret"))
	return stack
}

func TestPregnancyService_Register(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodPost, "/pregnancy", testutil.StaticJSON(http.StatusCreated, momfitdomain.PregnancyInfo{
			PregnancyID:   3,
			DueDate:       "2026-12-01",
			MaxAllowedBPM: 140,
		})).
		Build()
	stack := loggedInStack(t, server)

	info, err := NewPregnancyService(stack.client).Register(context.Background(), momfitdomain.PregnancyRegistration{
		LastMenstrualPeriod: "2026-02-24",
		Height:              162,
		PreWeight:           55.5,
		FitnessLevel:        momfitdomain.FitnessActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.PregnancyID)
	assert.Equal(t, 140, info.MaxAllowedBPM)

	req, _ := server.LastRequest("/pregnancy")
	assert.JSONEq(t, `{
		"last_menstrual_period": "2026-02-24",
		"height": 162,
		"pre_weight": 55.5,
		"is_multiple": false,
		"fitness_level": "ACTIVE",
		"conditions": []
	}`, string(req.Body))
}

func TestPregnancyService_RegisterValidates(t *testing.T) {
	gateway := &MockGateway{}
	_, err := NewPregnancyService(gateway).Register(context.Background(), momfitdomain.PregnancyRegistration{
		LastMenstrualPeriod: "yesterday",
		Height:              160,
		PreWeight:           50,
		FitnessLevel:        momfitdomain.FitnessSedentary,
	})
	assert.Error(t, err)
	gateway.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPregnancyService_Me(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodGet, "/pregnancy/me", testutil.StaticJSON(http.StatusOK, map[string]interface{}{
			"pregnancy_id":          9,
			"last_menstrual_period": "2026-01-01",
			"fitness_level":         "SEDENTARY",
		})).
		Build()
	stack := loggedInStack(t, server)

	info, err := NewPregnancyService(stack.client).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), info.PregnancyID)
	assert.Equal(t, momfitdomain.FitnessSedentary, info.FitnessLevel)
}

func TestSymptomService_Submit(t *testing.T) {
	t.Run("sends codes", func(t *testing.T) {
		server := testutil.NewMockAPIServer(t).
			WithProtectedRoute(http.MethodPost, "/symptom", testutil.StaticJSON(http.StatusCreated, map[string]string{})).
			Build()
		stack := loggedInStack(t, server)

		sent, err := NewSymptomService(stack.client).Submit(context.Background(),
			[]momfitdomain.Symptom{momfitdomain.SymptomBackPain, momfitdomain.SymptomFatigue})
		require.NoError(t, err)
		assert.True(t, sent)

		req, _ := server.LastRequest("/symptom")
		assert.JSONEq(t, `{"symptoms":["BACK_PAIN","FATIGUE"]}`, string(req.Body))
	})

	t.Run("empty list makes no call", func(t *testing.T) {
		gateway := &MockGateway{}
		sent, err := NewSymptomService(gateway).Submit(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, sent)
		gateway.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExerciseService(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodGet, "/exercises", testutil.StaticJSON(http.StatusOK, []momfitdomain.Exercise{
			{ID: 1, Title: "Cat-cow", Category: "yoga", Difficulty: "beginner"},
		})).
		WithProtectedRoute(http.MethodGet, "/exercises/{id}", testutil.Echo()).
		Build()
	stack := loggedInStack(t, server)
	svc := NewExerciseService(stack.client)

	list, err := svc.List(context.Background(), momfitdomain.ExerciseFilter{Category: "yoga", Difficulty: "beginner"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cat-cow", list[0].Title)

	req, _ := server.LastRequest("/exercises")
	assert.Equal(t, []string{"yoga"}, req.QueryParams["category"])
	assert.Equal(t, []string{"beginner"}, req.QueryParams["difficulty"])

	_, err = svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, server.GetRequestCount("/exercises/42"))
}

func TestWorkoutService_Lifecycle(t *testing.T) {
	server := testutil.NewMockAPIServer(t).
		WithProtectedRoute(http.MethodPost, "/exercise-sessions", testutil.StaticJSON(http.StatusCreated, momfitdomain.WorkoutSession{
			ID: 5, ExerciseIDs: []int64{1, 2}, Status: momfitdomain.WorkoutInProgress,
		})).
		WithProtectedRoute(http.MethodPatch, "/exercise-sessions/{id}", testutil.NoContent()).
		WithProtectedRoute(http.MethodPost, "/exercise-sessions/{id}/complete", testutil.StaticJSON(http.StatusOK, momfitdomain.WorkoutReport{
			SessionID: 5, TotalSeconds: 600, ExercisesDone: 2,
		})).
		WithProtectedRoute(http.MethodDelete, "/exercise-sessions/{id}", testutil.NoContent()).
		Build()
	stack := loggedInStack(t, server)
	svc := NewWorkoutService(stack.client)
	ctx := context.Background()

	session, err := svc.Start(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.ID)
	req, _ := server.LastRequest("/exercise-sessions")
	assert.JSONEq(t, `{"exercise_ids":[1,2]}`, string(req.Body))

	updated, err := svc.Progress(ctx, 5, momfitdomain.WorkoutProgress{ExerciseID: 1, ElapsedSeconds: 90, HeartRate: 120})
	require.NoError(t, err)
	assert.Nil(t, updated)
	req, _ = server.LastRequest("/exercise-sessions/5")
	var progress momfitdomain.WorkoutProgress
	require.NoError(t, json.Unmarshal(req.Body, &progress))
	assert.Equal(t, 120, progress.HeartRate)

	report, err := svc.Finish(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 600, report.TotalSeconds)

	require.NoError(t, svc.Abandon(ctx, 5))
	last, _ := server.LastRequest("/exercise-sessions/5")
	assert.Equal(t, http.MethodDelete, last.Method)
}

func TestWorkoutService_StartRequiresExercises(t *testing.T) {
	_, err := NewWorkoutService(&MockGateway{}).Start(context.Background(), nil)
	assert.Error(t, err)
}

func TestWorkoutService_FailurePropagates(t *testing.T) {
	gateway := &MockGateway{}
	gateway.On("Remove", mock.Anything, "/exercise-sessions/7", nil).
		Return(httpdomain.Body{}, &httpdomain.Error{Status: http.StatusNotFound, Message: "no such session"})

	err := NewWorkoutService(gateway).Abandon(context.Background(), 7)
	assert.Equal(t, http.StatusNotFound, httpdomain.StatusCode(err))
}
