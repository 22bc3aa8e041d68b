package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zinminlatt/ispbill/internal/invoice"
)

func draftWithItem(t *testing.T) *invoice.Draft {
	t.Helper()

	d := invoice.NewDraft()
	require.NoError(t, d.SetItemField(0, invoice.FieldDescription, "Monthly Internet Fee"))
	require.NoError(t, d.SetItemField(0, invoice.FieldQuantity, "2"))
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "5000"))
	require.NoError(t, d.SetItemField(0, invoice.FieldItemDiscount, "1000"))
	d.SetDiscount("2000")

	return d
}

func TestService_Submit_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			assert.InDelta(t, 9000, inv.SubTotal, 1e-9)
			assert.InDelta(t, 2000, inv.DiscountAmount, 1e-9)
			assert.InDelta(t, 7000, inv.TotalAmount, 1e-9)
			require.Len(t, inv.Items, 1)

			inv.ID = uuid.New()
			inv.Number = "INV-000001"

			return nil
		})

	svc := invoice.NewService(repo)

	d := draftWithItem(t)
	d.Customer = &invoice.CustomerRef{ID: uuid.New(), Name: "Aung Aung"}

	inv, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, invoice.DraftSaved, d.State())
}

func TestService_Submit_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existingID := uuid.New()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, existingID, inv.ID)
			return nil
		})

	svc := invoice.NewService(repo)

	d := draftWithItem(t)
	d.ID = &existingID
	d.Customer = &invoice.CustomerRef{ID: uuid.New(), Name: "Su Su"}

	_, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, invoice.DraftSaved, d.State())
}

func TestService_Submit_MissingCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repo expectations: the draft must be rejected before any store call.
	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	d := draftWithItem(t)
	before := append([]invoice.LineItem(nil), d.Items...)

	_, err := svc.Submit(context.Background(), d)
	assert.ErrorIs(t, err, invoice.ErrMissingCustomer)
	assert.Equal(t, before, d.Items)
}

func TestService_Submit_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		Return(nil)

	svc := invoice.NewService(repo)

	d := draftWithItem(t)
	d.Customer = &invoice.CustomerRef{ID: uuid.New(), Name: "Aung Aung"}

	_, err := svc.Submit(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, invoice.DraftFailed, d.State())
	assert.Error(t, d.Err())
	assert.Len(t, d.Items, 1)

	// Correcting a field clears the failure and the retry goes through.
	require.NoError(t, d.SetItemField(0, invoice.FieldUnitPrice, "5500"))
	assert.NoError(t, d.Err())

	_, err = svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, invoice.DraftSaved, d.State())
}

func TestService_Submit_RejectsConcurrentSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	d := draftWithItem(t)
	d.Customer = &invoice.CustomerRef{ID: uuid.New(), Name: "Aung Aung"}

	// Re-enter Submit from inside the store call to simulate a second
	// press while the first request is still in flight.
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *invoice.Invoice) error {
			_, err := svc.Submit(ctx, d)
			assert.ErrorIs(t, err, invoice.ErrSubmitInFlight)

			return nil
		})

	_, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListInvoices(gomock.Any(), "aung").
		Return([]*invoice.Invoice{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := invoice.NewService(repo)

	invs, err := svc.List(context.Background(), "aung")
	require.NoError(t, err)
	assert.Len(t, invs, 2)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().DeleteInvoice(gomock.Any(), id).Return(nil)

	svc := invoice.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), id))
}
