package customer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zinminlatt/ispbill/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:         "Aung Aung",
				PrimaryPhone: "09-790000001",
				Address:      "No.12, Main Road",
				QuarterID:    uuid.New(),
				PlanID:       uuid.New(),
				InstallDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						c.Code = "CUS-000042"
						c.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{Name: "Su Su"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.NotEmpty(t, got.Code)
			assert.Equal(t, customer.StatusActive, got.Status)
		})
	}
}

func TestService_ImportBatch(t *testing.T) {
	params := []customer.CreateParams{
		{Name: "Aung Aung", ONUSerial: "HWTC-1111"},
		{Name: "Su Su", ONUSerial: "HWTC-2222"},
	}

	t.Run("AllNew", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		itx := customer.NewMockImportTx(ctrl)
		itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
		itx.EXPECT().
			CreateCustomers(gomock.Any(), gomock.Len(2)).
			Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)

		svc := customer.NewService(repo)

		result, err := svc.ImportBatch(context.Background(), params)
		require.NoError(t, err)
		assert.Len(t, result.Imported, 2)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("ConflictsReportedWithoutWriting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := &customer.Customer{ID: uuid.New(), Code: "CUS-000007", ONUSerial: "HWTC-1111"}

		itx := customer.NewMockImportTx(ctrl)
		itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*customer.Customer{existing}, nil)
		itx.EXPECT().Rollback().Return(nil)

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)

		svc := customer.NewService(repo)

		result, err := svc.ImportBatch(context.Background(), params)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, existing, result.Conflicts[0].Existing)
		require.Len(t, result.New, 1)
		assert.Equal(t, "Su Su", result.New[0].Name)
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		svc := customer.NewService(repo)

		result, err := svc.ImportBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
	})
}
