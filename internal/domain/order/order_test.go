package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	total := decimal.RequireFromString("25.50")

	o, err := New("o-1", "u-1", []string{"p-2", "p-1", "p-2"}, total)
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, o.Status)
	assert.Equal(t, []string{"p-1", "p-2"}, o.ProductIDs, "ids deduplicated and sorted")
	assert.True(t, o.TotalAmount.Equal(total))
	assert.Empty(t, o.TrackingNumber)
	assert.False(t, o.OrderDate.IsZero())
}

func TestNewOrderValidation(t *testing.T) {
	_, err := New("o-1", "", []string{"p-1"}, decimal.Zero)
	assert.ErrorIs(t, err, ErrUserRequired)

	_, err = New("o-1", "u-1", nil, decimal.Zero)
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestSetStatusKeepsTrackingWhenBlank(t *testing.T) {
	o, err := New("o-1", "u-1", []string{"p-1"}, decimal.Zero)
	require.NoError(t, err)

	o.SetStatus(StatusShipped, "TRACK-1")
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "TRACK-1", o.TrackingNumber)

	o.SetStatus(StatusDelivered, "")
	assert.Equal(t, StatusDelivered, o.Status)
	assert.Equal(t, "TRACK-1", o.TrackingNumber, "blank tracking must not erase the previous value")
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr error
	}{
		{in: "CREATED", want: StatusCreated},
		{in: "CONFIRMED", want: StatusConfirmed},
		{in: "SHIPPED", want: StatusShipped},
		{in: "DELIVERED", want: StatusDelivered},
		{in: "CANCELLED", want: StatusCancelled},
		{in: "REFUNDED", want: StatusRefunded},
		{in: "", wantErr: ErrInvalidStatus},
		{in: "confirmed", wantErr: ErrUnknownStatus},
		{in: "UNKNOWN", wantErr: ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloneIsolatesProductIDs(t *testing.T) {
	o, err := New("o-1", "u-1", []string{"p-1", "p-2"}, decimal.Zero)
	require.NoError(t, err)

	clone := o.Clone()
	clone.ProductIDs[0] = "mutated"
	assert.Equal(t, "p-1", o.ProductIDs[0])
}
