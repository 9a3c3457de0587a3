package usecase

import (
	"context"
	"errors"
	"testing"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssign_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	clinician := env.createUser(t, "c@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()
	req := &dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: patient.ID.String()}

	first, err := env.assignments.Assign(ctx, req)
	require.NoError(t, err)
	_, err = env.assignments.Assign(ctx, req)
	require.NoError(t, err)

	rows, err := env.assignmentRepo.FindByPatient(ctx, env.db, patient.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, clinician.ID, rows[0].ClinicianUserID)
	assert.Equal(t, "c@example.com", first.ClinicianEmail)
	assert.Contains(t, env.auditMessages(t), "Admin assigned patient p@example.com to clinician c@example.com")
}

func TestAssign_ReplacesPreviousClinician(t *testing.T) {
	env := newTestEnv(t)
	first := env.createUser(t, "c1@example.com", "secret1", entity.RoleClinician)
	second := env.createUser(t, "c2@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	other := env.createUser(t, "p2@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	_, err := env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: first.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)
	_, err = env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: first.ID.String(), PatientID: other.ID.String()})
	require.NoError(t, err)
	_, err = env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: second.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)

	rows, err := env.assignmentRepo.FindByPatient(ctx, env.db, patient.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ClinicianUserID)

	count, err := env.assignmentRepo.CountByClinician(ctx, env.db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAssign_Rejections(t *testing.T) {
	env := newTestEnv(t)
	clinician := env.createUser(t, "c@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	admin := env.createUser(t, "a@example.com", "secret1", entity.RoleAdmin)

	tests := []struct {
		name string
		req  dto.AssignRequest
		err  error
	}{
		{"blank clinician", dto.AssignRequest{PatientID: patient.ID.String()}, ErrMissingArgument},
		{"blank patient", dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: "   "}, ErrMissingArgument},
		{"malformed id", dto.AssignRequest{ClinicianID: "not-a-uuid", PatientID: patient.ID.String()}, ErrMissingArgument},
		{"unknown clinician", dto.AssignRequest{ClinicianID: uuid.NewString(), PatientID: patient.ID.String()}, ErrUserNotFound},
		{"unknown patient", dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: uuid.NewString()}, ErrUserNotFound},
		{"swapped roles", dto.AssignRequest{ClinicianID: patient.ID.String(), PatientID: clinician.ID.String()}, ErrRoleMismatch},
		{"admin as clinician", dto.AssignRequest{ClinicianID: admin.ID.String(), PatientID: patient.ID.String()}, ErrRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.assignments.Assign(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	rows, err := env.assignmentRepo.FindAll(context.Background(), env.db)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUnassign(t *testing.T) {
	env := newTestEnv(t)
	clinician := env.createUser(t, "c@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	_, err := env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)

	require.NoError(t, env.assignments.Unassign(ctx, patient.ID.String()))
	rows, err := env.assignmentRepo.FindByPatient(ctx, env.db, patient.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.NoError(t, env.assignments.Unassign(ctx, patient.ID.String()))
	assert.ErrorIs(t, env.assignments.Unassign(ctx, ""), ErrMissingArgument)
	assert.ErrorIs(t, env.assignments.Unassign(ctx, uuid.NewString()), ErrUserNotFound)
}

func TestAssign_FailureKeepsPreviousLink(t *testing.T) {
	env := newTestEnv(t)
	first := env.createUser(t, "c1@example.com", "secret1", entity.RoleClinician)
	second := env.createUser(t, "c2@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	_, err := env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: first.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)

	// the insert fails after the previous link was deleted inside the transaction
	err = env.db.Callback().Create().Before("gorm:create").Register("test:fail_assignments", func(tx *gorm.DB) {
		if tx.Statement.Table == "clinician_patient_assignments" {
			_ = tx.AddError(errors.New("assignments unavailable"))
		}
	})
	require.NoError(t, err)

	_, err = env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: second.ID.String(), PatientID: patient.ID.String()})
	require.Error(t, err)

	rows, err := env.assignmentRepo.FindByPatient(ctx, env.db, patient.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ClinicianUserID)
	assert.NotContains(t, env.auditMessages(t), "Admin assigned patient p@example.com to clinician c2@example.com")
}
