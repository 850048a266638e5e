package txqueue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quantex-lab/relayer/pkg/pubsub"
	"github.com/quantex-lab/relayer/pkg/xcontext"
	"github.com/quantex-lab/relayer/pkg/xredis"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
)

const optOutKeyPrefix = "relayer:instrument:optout:"

// Record is the flat telemetry event emitted once per processed request,
// success or failure.
type Record struct {
	Type      string `mapstructure:"type"`
	ActionID  string `mapstructure:"action_id"`
	StartedAt int64  `mapstructure:"started_at"`

	TxHash          string `mapstructure:"tx_hash,omitempty"`
	TimeToSubmitMs  int64  `mapstructure:"time_to_submit_ms,omitempty"`
	TimeToConfirmMs int64  `mapstructure:"time_to_confirm_ms,omitempty"`

	Error         string `mapstructure:"error,omitempty"`
	TimeToErrorMs int64  `mapstructure:"time_to_error_ms,omitempty"`

	Chain    string `mapstructure:"chain"`
	Endpoint string `mapstructure:"endpoint,omitempty"`
	Address  string `mapstructure:"address"`

	Diagnostic         map[string]any `mapstructure:"diagnostic,omitempty"`
	DiagnosticAttached bool           `mapstructure:"diagnostic_attached"`
}

// recorder assembles and publishes telemetry. Its failures are logged and
// swallowed; they must never affect the request outcome.
type recorder struct {
	chain       string
	account     common.Address
	topic       string
	publisher   pubsub.Publisher
	redisClient xredis.Client
}

func newRecorder(
	chain string,
	account common.Address,
	topic string,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
) *recorder {
	return &recorder{
		chain:       chain,
		account:     account,
		topic:       topic,
		publisher:   publisher,
		redisClient: redisClient,
	}
}

// optedOut checks the per-account opt-out flag. On a redis error the record
// is emitted anyway.
func (r *recorder) optedOut(ctx context.Context) bool {
	optedOut, err := r.redisClient.Exist(ctx, optOutKeyPrefix+r.account.Hex())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read instrumentation opt-out flag: %v", err)
		return false
	}

	return optedOut
}

func (r *recorder) record(ctx context.Context, rec *Record) {
	if r.publisher == nil || r.optedOut(ctx) {
		return
	}

	rec.Chain = r.chain
	rec.Address = r.account.Hex()
	rec.DiagnosticAttached = rec.Diagnostic != nil

	flat := map[string]any{}
	if err := mapstructure.Decode(rec, &flat); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot flatten telemetry record of %s: %v", rec.ActionID, err)
		return
	}

	b, err := json.Marshal(flat)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal telemetry record of %s: %v", rec.ActionID, err)
		return
	}

	err = r.publisher.Publish(ctx, r.topic, &pubsub.Pack{Key: []byte(rec.ActionID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish telemetry record of %s: %v", rec.ActionID, err)
	}
}

func elapsedMs(from time.Time) int64 {
	return time.Since(from).Milliseconds()
}
