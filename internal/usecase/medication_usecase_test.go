package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	list, err := env.medications.List(ctx, john)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.True(t, list.Medications[0].Active)

	due, err := env.medications.Due(ctx, john)
	require.NoError(t, err)
	require.Equal(t, 1, due.Total)
	metformin := due.Medications[0]
	assert.Equal(t, "Metformin", metformin.Name)

	_, err = env.medications.List(ctx, sarah)
	assert.ErrorIs(t, err, ErrPatientOnly)

	t.Run("other patient cannot mark", func(t *testing.T) {
		_, err := env.medications.MarkTaken(ctx, emma, metformin.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown medication", func(t *testing.T) {
		_, err := env.medications.MarkTaken(ctx, john, uuid.New())
		assert.ErrorIs(t, err, ErrMedicationNotFound)
	})

	t.Run("mark taken advances next dose", func(t *testing.T) {
		res, err := env.medications.MarkTaken(ctx, john, metformin.ID)
		require.NoError(t, err)
		assert.True(t, res.Taken)
		assert.Equal(t, metformin.NextDose.Add(12*time.Hour), res.NextDose)

		due, err := env.medications.Due(ctx, john)
		require.NoError(t, err)
		assert.Equal(t, 0, due.Total)
	})
}

type failingAuditService struct{}

func (failingAuditService) Log(ctx context.Context, userID uuid.UUID, action string, metadata entity.JSON) error {
	return errors.New("audit store down")
}

func (failingAuditService) LogCreate(ctx context.Context, userID uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return errors.New("audit store down")
}

func (failingAuditService) LogUpdate(ctx context.Context, userID uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return errors.New("audit store down")
}

func TestMarkTakenSurvivesAuditFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	medications := NewMedicationUsecase(testLogger(), memory.NewMedicationRepository(env.store), failingAuditService{})
	medications.(*medicationUsecase).now = fixedClock

	due, err := medications.Due(ctx, john)
	require.NoError(t, err)
	require.Equal(t, 1, due.Total)

	res, err := medications.MarkTaken(ctx, john, due.Medications[0].ID)
	require.NoError(t, err)
	assert.True(t, res.Taken)
}
