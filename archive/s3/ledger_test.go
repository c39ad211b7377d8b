package s3

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB is an in-memory DynamoDB double honoring the conditional-put
// semantics the ledger relies on.
type fakeDDB struct {
	mu    sync.Mutex
	items map[string][]map[string]types.AttributeValue // schedule_id -> items, insertion order

	// beforePut, when set, runs once at the start of the next PutItem;
	// used to interleave a rival writer between query and put.
	beforePut func()
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string][]map[string]types.AttributeValue)}
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.beforePut != nil {
		hook := f.beforePut
		f.beforePut = nil
		hook()
	}

	sid := params.Item["schedule_id"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	for _, item := range f.items[sid] {
		if item["version"].(*types.AttributeValueMemberN).Value == version {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items[sid] = append(f.items[sid], params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sid := params.ExpressionAttributeValues[":sid"].(*types.AttributeValueMemberS).Value
	items := f.items[sid]
	if len(items) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}

	best := items[0]
	for _, item := range items[1:] {
		a, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		b, _ := strconv.ParseUint(best["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		if a > b {
			best = item
		}
	}
	return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{best}}, nil
}

func TestRunLedgerAppendAndLatest(t *testing.T) {
	ctx := context.Background()
	ledger := NewRunLedger(newFakeDDB(), "solver-runs")

	v1, err := ledger.Append(ctx, "block-7", "run-a", "runs/run-a.qrec")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	v2, err := ledger.Append(ctx, "block-7", "run-b", "runs/run-b.qrec")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)

	latest, err := ledger.Latest(ctx, "block-7")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.Version)
	assert.Equal(t, "run-b", latest.RunID)
	assert.Equal(t, "runs/run-b.qrec", latest.RecordKey)
}

func TestRunLedgerSchedulesIndependent(t *testing.T) {
	ctx := context.Background()
	ledger := NewRunLedger(newFakeDDB(), "solver-runs")

	_, err := ledger.Append(ctx, "block-1", "run-a", "runs/run-a.qrec")
	require.NoError(t, err)

	v, err := ledger.Append(ctx, "block-2", "run-b", "runs/run-b.qrec")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestRunLedgerDetectsRace(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()
	ledger := NewRunLedger(ddb, "solver-runs")

	_, err := ledger.Append(ctx, "block-7", "run-a", "runs/run-a.qrec")
	require.NoError(t, err)

	// A rival writer claims version 2 between our query and our put.
	ddb.beforePut = func() {
		ddb.items["block-7"] = append(ddb.items["block-7"], map[string]types.AttributeValue{
			"schedule_id": &types.AttributeValueMemberS{Value: "block-7"},
			"version":     &types.AttributeValueMemberN{Value: "2"},
			"run_id":      &types.AttributeValueMemberS{Value: "rival"},
			"record_key":  &types.AttributeValueMemberS{Value: "runs/rival.qrec"},
		})
	}

	_, err = ledger.Append(ctx, "block-7", "run-late", "runs/run-late.qrec")
	assert.ErrorIs(t, err, ErrConcurrentModification)

	latest, err := ledger.Latest(ctx, "block-7")
	require.NoError(t, err)
	assert.Equal(t, "rival", latest.RunID)
}

func TestRunLedgerLatestEmpty(t *testing.T) {
	ledger := NewRunLedger(newFakeDDB(), "solver-runs")
	_, err := ledger.Latest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoRuns)
}
