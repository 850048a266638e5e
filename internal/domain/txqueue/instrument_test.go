package txqueue

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/quantex-lab/relayer/pkg/testutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(
	publisher *testutil.MockPublisher, redisClient *testutil.MockRedisClient,
) *recorder {
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")
	return newRecorder("testchain", account, "telemetry", publisher, redisClient)
}

func TestRecorderPublishesFlatRecord(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	publisher := testutil.NewMockPublisher()
	rec := newTestRecorder(publisher, &testutil.MockRedisClient{})

	rec.record(ctx, &Record{
		Type:            string(TxTypeNativeTransfer),
		ActionID:        "action-1",
		StartedAt:       time.Now().UnixMilli(),
		TxHash:          "0xabc",
		TimeToSubmitMs:  12,
		TimeToConfirmMs: 340,
		Diagnostic:      map[string]any{"attempt": "2"},
	})

	packs := publisher.Published("telemetry")
	require.Len(t, packs, 1)
	require.Equal(t, "action-1", string(packs[0].Key))

	var flat map[string]any
	require.NoError(t, json.Unmarshal(packs[0].Msg, &flat))

	require.Equal(t, "native_transfer", flat["type"])
	require.Equal(t, "action-1", flat["action_id"])
	require.Equal(t, "0xabc", flat["tx_hash"])
	require.Equal(t, float64(12), flat["time_to_submit_ms"])
	require.Equal(t, float64(340), flat["time_to_confirm_ms"])
	require.Equal(t, "testchain", flat["chain"])
	require.Equal(t, true, flat["diagnostic_attached"])
	require.NotContains(t, flat, "error")
}

func TestRecorderFailureRecord(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	publisher := testutil.NewMockPublisher()
	rec := newTestRecorder(publisher, &testutil.MockRedisClient{})

	rec.record(ctx, &Record{
		Type:          string(TxTypeTokenTransfer),
		ActionID:      "action-2",
		StartedAt:     time.Now().UnixMilli(),
		Error:         "network did not acknowledge the transaction in time",
		TimeToErrorMs: 5000,
	})

	packs := publisher.Published("telemetry")
	require.Len(t, packs, 1)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(packs[0].Msg, &flat))

	require.Equal(t, "network did not acknowledge the transaction in time", flat["error"])
	require.Equal(t, float64(5000), flat["time_to_error_ms"])
	require.Equal(t, false, flat["diagnostic_attached"])
	require.NotContains(t, flat, "tx_hash")
	require.NotContains(t, flat, "diagnostic")
}

func TestRecorderOptOut(t *testing.T) {
	ctx := testutil.MockContextWithoutDB()
	publisher := testutil.NewMockPublisher()

	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			require.True(t, strings.HasPrefix(key, "relayer:instrument:optout:0x"))
			return true, nil
		},
	}

	rec := newTestRecorder(publisher, redisClient)
	rec.record(ctx, &Record{Type: string(TxTypeNativeTransfer), ActionID: "quiet"})

	require.Empty(t, publisher.Published("telemetry"))
}
