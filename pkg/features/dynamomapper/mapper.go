package dynamomapper

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// SimplifyDynamoDBItems converts scanned records into JSON friendly maps.
// It never returns nil so an empty table encodes as [].
func SimplifyDynamoDBItems(items []map[string]types.AttributeValue) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		result = append(result, SimplifyDynamoDBItem(item))
	}
	return result
}

func SimplifyDynamoDBItem(item map[string]types.AttributeValue) map[string]interface{} {
	result := make(map[string]interface{}, len(item))
	for key, value := range item {
		result[key] = simplify(value)
	}
	return result
}

// Numbers stay strings, DynamoDB does not promise they fit a float64.
func simplify(value types.AttributeValue) interface{} {
	switch v := value.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	case *types.AttributeValueMemberBOOL:
		return v.Value
	case *types.AttributeValueMemberB:
		return v.Value
	case *types.AttributeValueMemberNULL:
		return nil
	case *types.AttributeValueMemberSS:
		return append([]string{}, v.Value...)
	case *types.AttributeValueMemberNS:
		return append([]string{}, v.Value...)
	case *types.AttributeValueMemberM:
		return SimplifyDynamoDBItem(v.Value)
	case *types.AttributeValueMemberL:
		list := make([]interface{}, 0, len(v.Value))
		for _, subValue := range v.Value {
			list = append(list, simplify(subValue))
		}
		return list
	default:
		return nil
	}
}
