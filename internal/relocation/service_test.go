package relocation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zinminlatt/ispbill/internal/relocation"
)

func TestService_Relocate(t *testing.T) {
	custID := uuid.New()
	quarterID := uuid.New()

	type testCase struct {
		name      string
		params    relocation.Params
		setupMock func(m *relocation.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: relocation.Params{
				NewAddress:   "No.56, New Town Road",
				NewQuarterID: quarterID,
				NewDNSN:      "DN-9100",
				Remark:       "moved to new town",
			},
			setupMock: func(m *relocation.MockRepository) {
				m.EXPECT().
					Relocate(gomock.Any(), custID, gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID, p relocation.Params) (*relocation.Record, error) {
						return &relocation.Record{
							ID:           uuid.New(),
							CustomerID:   id,
							OldAddress:   "No.12, Main Road",
							NewAddress:   p.NewAddress,
							NewQuarterID: p.NewQuarterID,
						}, nil
					})
			},
		},
		{
			name:    "MissingAddress",
			params:  relocation.Params{NewQuarterID: quarterID},
			wantErr: relocation.ErrMissingLocation,
		},
		{
			name:    "MissingQuarter",
			params:  relocation.Params{NewAddress: "No.56"},
			wantErr: relocation.ErrMissingLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := relocation.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := relocation.NewService(repo)
			rec, err := svc.Relocate(context.Background(), custID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, custID, rec.CustomerID)
			assert.Equal(t, "No.12, Main Road", rec.OldAddress)
			assert.Equal(t, tt.params.NewAddress, rec.NewAddress)
		})
	}
}

func TestService_CustomerHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	custID := uuid.New()

	repo := relocation.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCustomerHistory(gomock.Any(), custID).
		Return([]*relocation.Record{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := relocation.NewService(repo)

	records, err := svc.CustomerHistory(context.Background(), custID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
