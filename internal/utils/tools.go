package utils

import "github.com/google/uuid"

// DeduplicateIDs keeps the first occurrence of every id, preserving order.
// Zero ids are kept so callers can reject them.
func DeduplicateIDs(values []uint) []uint {
	if len(values) == 0 {
		return []uint{}
	}
	result := make([]uint, 0, len(values))
	seen := make(map[uint]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func GenerateUUID() string {
	return uuid.NewString()
}
