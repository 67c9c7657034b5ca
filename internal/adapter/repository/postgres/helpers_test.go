package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mgiordano/pymebooks/internal/domain"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	cases := []string{"0", "121", "1234.56", "-50.5", "0.0001"}

	for _, c := range cases {
		d, err := decimal.NewFromString(c)
		require.NoError(t, err)

		got := numericToDecimal(decimalToNumeric(d))
		require.True(t, got.Equal(d), "round trip of %s gave %s", c, got)
	}
}

func TestNumericToDecimalInvalid(t *testing.T) {
	got := numericToDecimal(pgtype.Numeric{})
	require.True(t, got.IsZero())
}

func TestTimestamptzHelpers(t *testing.T) {
	now := time.Now().UTC()

	ts := timeToPgTimestamptz(now)
	require.True(t, ts.Valid)
	require.Equal(t, now, ts.Time)

	require.False(t, timePtrToPgTimestamptz(nil).Valid)
	require.Equal(t, &now, pgTimestamptzToPtr(timePtrToPgTimestamptz(&now)))
	require.Nil(t, pgTimestamptzToPtr(pgtype.Timestamptz{}))
}

func TestItemsJSON(t *testing.T) {
	// nil slice marshals as an empty array, not null
	data, err := itemsToJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	items := []domain.LineItem{
		{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
	}
	data, err = itemsToJSON(items)
	require.NoError(t, err)

	decoded, err := itemsFromJSON(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, "Consulting", decoded[0].Description)
	require.True(t, decoded[0].Quantity.Equal(decimal.NewFromInt(2)))

	empty, err := itemsFromJSON(nil)
	require.NoError(t, err)
	require.Nil(t, empty)
}
