package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentModification is returned when two solvers race to append a
// run for the same schedule.
var ErrConcurrentModification = errors.New("concurrent ledger modification detected")

// ErrNoRuns is returned by Latest when a schedule has no archived runs.
var ErrNoRuns = errors.New("no archived runs for schedule")

// DDBClient is the slice of the DynamoDB API the ledger uses; *dynamodb.Client
// satisfies it and tests supply fakes.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// LedgerEntry is one appended run.
type LedgerEntry struct {
	ScheduleID string
	Version    uint64
	RunID      string
	RecordKey  string
}

// RunLedger versions archived runs per schedule in a DynamoDB table.
//
// Table schema: partition key schedule_id (S), sort key version (N).
// Appends use a conditional put on the version, so the highest version is
// always the latest run and concurrent appenders cannot clobber each other.
type RunLedger struct {
	client DDBClient
	table  string
}

// NewRunLedger creates a ledger on the given table.
func NewRunLedger(client DDBClient, table string) *RunLedger {
	return &RunLedger{client: client, table: table}
}

// Append records a new run for scheduleID and returns its version. A lost
// race returns ErrConcurrentModification; callers may re-query and retry.
func (l *RunLedger) Append(ctx context.Context, scheduleID, runID, recordKey string) (uint64, error) {
	latest, err := l.latestVersion(ctx, scheduleID)
	if err != nil && !errors.Is(err, ErrNoRuns) {
		return 0, err
	}
	version := latest + 1

	_, err = l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item: map[string]types.AttributeValue{
			"schedule_id": &types.AttributeValueMemberS{Value: scheduleID},
			"version":     &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"run_id":      &types.AttributeValueMemberS{Value: runID},
			"record_key":  &types.AttributeValueMemberS{Value: recordKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("ledger append: %w", err)
	}
	return version, nil
}

// Latest returns the most recently appended run for scheduleID.
func (l *RunLedger) Latest(ctx context.Context, scheduleID string) (*LedgerEntry, error) {
	item, err := l.latestItem(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	entry := &LedgerEntry{ScheduleID: scheduleID}
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, errors.New("ledger item missing version attribute")
	}
	entry.Version, err = strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse ledger version: %w", err)
	}
	if run, ok := item["run_id"].(*types.AttributeValueMemberS); ok {
		entry.RunID = run.Value
	}
	if key, ok := item["record_key"].(*types.AttributeValueMemberS); ok {
		entry.RecordKey = key.Value
	}
	return entry, nil
}

func (l *RunLedger) latestVersion(ctx context.Context, scheduleID string) (uint64, error) {
	item, err := l.latestItem(ctx, scheduleID)
	if err != nil {
		return 0, err
	}
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("ledger item missing version attribute")
	}
	return strconv.ParseUint(versionAttr.Value, 10, 64)
}

func (l *RunLedger) latestItem(ctx context.Context, scheduleID string) (map[string]types.AttributeValue, error) {
	resp, err := l.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		KeyConditionExpression: aws.String("schedule_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: scheduleID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("ledger query: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNoRuns
	}
	return resp.Items[0], nil
}
