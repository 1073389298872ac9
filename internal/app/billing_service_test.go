package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/example/billid/internal/core/billing"
	"github.com/example/billid/internal/ports/primary"
)

// fixedClock implements secondary.Clock for testing.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestBillingService(t *testing.T, year int) *BillingServiceImpl {
	t.Helper()
	clock := fixedClock{now: time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)}
	return NewBillingService(clock, zaptest.NewLogger(t))
}

func intPtr(n int) *int { return &n }

func TestBillingService_GenerateID(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		req     primary.GenerateIDRequest
		want    string
		payload string
	}{
		{
			name:    "sequential",
			year:    2025,
			req:     primary.GenerateIDRequest{ServiceCode: "WS", Sequential: intPtr(1)},
			want:    "WS250000018G",
			payload: "000001",
		},
		{
			name:    "client name is turned into an acronym",
			year:    2026,
			req:     primary.GenerateIDRequest{ServiceCode: "WS", ClientName: "Dra. Maria Silva"},
			want:    "WS26DRAMARBM",
			payload: "DRAMAR",
		},
		{
			name:    "client name with phase",
			year:    2026,
			req:     primary.GenerateIDRequest{ServiceCode: "SW", ClientName: "Acme", Phase: "E"},
			want:    "SW26ACMEXXE0",
			payload: "ACMEXX",
		},
		{
			name:    "precomputed acronym",
			year:    2026,
			req:     primary.GenerateIDRequest{ServiceCode: "sw", Acronym: "acmexx"},
			want:    "SW26ACMEXX00",
			payload: "ACMEXX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBillingService(t, tt.year)

			resp, err := svc.GenerateID(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.ID)
			assert.Equal(t, tt.payload, resp.Payload)
			assert.Equal(t, tt.year, resp.Year)
			assert.Equal(t, tt.want[:billing.BaseLength], resp.BaseCode)
			assert.Len(t, resp.CheckDigits, 2)
		})
	}
}

func TestBillingService_GenerateID_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      primary.GenerateIDRequest
		wantErr  error
		wantCode billing.ErrorCode
	}{
		{
			name:     "no payload source",
			req:      primary.GenerateIDRequest{ServiceCode: "WS"},
			wantErr:  ErrPayloadSource,
			wantCode: billing.CodePayloadSource,
		},
		{
			name:     "two payload sources",
			req:      primary.GenerateIDRequest{ServiceCode: "WS", Sequential: intPtr(1), ClientName: "Acme"},
			wantErr:  ErrPayloadSource,
			wantCode: billing.CodePayloadSource,
		},
		{
			name:     "unknown service",
			req:      primary.GenerateIDRequest{ServiceCode: "ZZ", Sequential: intPtr(1)},
			wantErr:  billing.ErrInvalidServiceCode,
			wantCode: billing.CodeInvalidServiceCode,
		},
		{
			name:     "sequential out of range",
			req:      primary.GenerateIDRequest{ServiceCode: "WS", Sequential: intPtr(1000000)},
			wantErr:  billing.ErrSequentialOutOfRange,
			wantCode: billing.CodeSequentialOutOfRange,
		},
		{
			name:     "invalid phase",
			req:      primary.GenerateIDRequest{ServiceCode: "WS", ClientName: "Acme", Phase: "Q"},
			wantErr:  billing.ErrInvalidPhase,
			wantCode: billing.CodeInvalidPhase,
		},
		{
			name:     "phase on sequential",
			req:      primary.GenerateIDRequest{ServiceCode: "WS", Sequential: intPtr(3), Phase: "E"},
			wantErr:  billing.ErrInvalidPhase,
			wantCode: billing.CodeInvalidPhase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestBillingService(t, 2026)

			resp, err := svc.GenerateID(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, tt.wantErr), "got error %v, want %v", err, tt.wantErr)
			assert.Equal(t, tt.wantCode, billing.CodeOf(err))
		})
	}
}

func TestBillingService_GenerateID_PhaseNeedsClient(t *testing.T) {
	svc := newTestBillingService(t, 2026)

	_, err := svc.GenerateID(context.Background(), primary.GenerateIDRequest{
		ServiceCode: "WS",
		Sequential:  intPtr(3),
		Phase:       "E",
	})
	require.ErrorIs(t, err, billing.ErrInvalidPhase)
	assert.Equal(t, billing.CodeInvalidPhase, billing.CodeOf(err))
	assert.Equal(t, "phase 'E' requires a client-based identifier", err.Error())
}

func TestBillingService_ValidateID(t *testing.T) {
	svc := newTestBillingService(t, 2026)

	got, err := svc.ValidateID(context.Background(), "ws250000018g")
	require.NoError(t, err)
	assert.Equal(t, "WS250000018G", got.ID)
	assert.Equal(t, "WS", got.ServiceCode)
	assert.Equal(t, 2025, got.Year)
	require.NotNil(t, got.Sequential)
	assert.Equal(t, 1, *got.Sequential)
	assert.Nil(t, got.Phase)
	assert.Equal(t, "8G", got.CheckDigits)
}

func TestBillingService_ValidateID_Phased(t *testing.T) {
	svc := newTestBillingService(t, 2026)

	got, err := svc.ValidateID(context.Background(), "SW26ACMEXXE0")
	require.NoError(t, err)
	assert.Nil(t, got.Sequential)
	require.NotNil(t, got.Phase)
	assert.Equal(t, "E", got.Phase.Code)
	assert.Equal(t, 50, got.Phase.PaymentPercent)
}

func TestBillingService_ValidateID_Mismatch(t *testing.T) {
	svc := newTestBillingService(t, 2026)

	got, err := svc.ValidateID(context.Background(), "WS250000018H")
	assert.Nil(t, got)

	var codecErr *billing.Error
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, billing.CodeChecksumMismatch, codecErr.Code)
	assert.Equal(t, "8G", codecErr.Expected)
	assert.Equal(t, "8H", codecErr.Received)
}

func TestBillingService_RoundTrip(t *testing.T) {
	svc := newTestBillingService(t, 2027)
	ctx := context.Background()

	for _, n := range []int{0, 10, 4242, 999999} {
		resp, err := svc.GenerateID(ctx, primary.GenerateIDRequest{ServiceCode: "HD", Sequential: intPtr(n)})
		require.NoError(t, err)

		got, err := svc.ValidateID(ctx, resp.ID)
		if billing.IsPhaseMarker(resp.CheckDigits[0]) {
			assert.ErrorIs(t, err, billing.ErrChecksumMismatch)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, "HD", got.ServiceCode)
		assert.Equal(t, 2027, got.Year)
		require.NotNil(t, got.Sequential)
		assert.Equal(t, n, *got.Sequential)
	}
}

func TestBillingService_Listings(t *testing.T) {
	svc := NewBillingService(fixedClock{}, nil)
	ctx := context.Background()

	services := svc.ListServices(ctx)
	require.Len(t, services, 10)
	assert.Equal(t, "WS", services[0].Code)
	assert.Equal(t, "TR", services[9].Code)

	phases := svc.ListPhases(ctx)
	require.Len(t, phases, 4)
	assert.Equal(t, "E", phases[0].Code)

	assert.Equal(t, "PADJOA", svc.GenerateAcronym(ctx, "Padaria do João"))
}
