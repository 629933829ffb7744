package dynamo

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// compositeKey builds a DynamoDB primary key with two string attributes (PK + SK).
func compositeKey(pkName, pkValue, skName, skValue string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		pkName: &types.AttributeValueMemberS{Value: pkValue},
		skName: &types.AttributeValueMemberS{Value: skValue},
	}
}

// batchWriteLimit is DynamoDB's hard cap on requests per BatchWriteItem call.
const batchWriteLimit = 25

// chunkWriteRequests splits write requests into BatchWriteItem-sized groups.
func chunkWriteRequests(reqs []types.WriteRequest) [][]types.WriteRequest {
	var chunks [][]types.WriteRequest
	for len(reqs) > batchWriteLimit {
		chunks = append(chunks, reqs[:batchWriteLimit])
		reqs = reqs[batchWriteLimit:]
	}
	if len(reqs) > 0 {
		chunks = append(chunks, reqs)
	}
	return chunks
}
